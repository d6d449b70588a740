package internal

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"maps"
	"net/http"

	"github.com/dmitrymomot/hyraft/pkg/renderer"
)

const htmlContentType = "text/html; charset=utf-8"

// Compiler renders a template by its logical name.
type Compiler interface {
	Compile(ctx context.Context, name string, locals map[string]any, opts ...renderer.RenderOption) (string, error)
}

var defaultMessages = map[int]string{
	http.StatusNotFound:            "The page you're looking for doesn't exist.",
	http.StatusUnprocessableEntity: "We couldn't process your request.",
	http.StatusInternalServerError: "Something went wrong on our end.",
}

// errorPages renders error responses, preferring a per-status template.
type errorPages struct {
	compiler  Compiler
	templates map[int]string
	logger    *slog.Logger
}

func (p *errorPages) write(w http.ResponseWriter, r *http.Request, status int, cause error, extra map[string]any) {
	ctx := r.Context()
	locals := errorLocals(r, status, cause, extra)

	if name, ok := p.templates[status]; ok && p.compiler != nil {
		html, err := p.compiler.Compile(ctx, name, locals)
		if err == nil {
			writeHTML(w, status, html)
			return
		}
		p.logger.WarnContext(ctx, "custom error template failed",
			slog.Int("status", status),
			slog.String("template", name),
			slog.String("error", err.Error()),
		)
	}

	title := http.StatusText(status)
	if httpErr := AsHTTPError(cause); httpErr != nil && httpErr.Title != "" {
		title = httpErr.Title
	}
	message, _ := locals["message"].(string)
	path, _ := locals["path"].(string)

	var buf bytes.Buffer
	if err := ErrorView(status, title, message, path).Render(ctx, &buf); err != nil {
		http.Error(w, title, status)
		return
	}
	writeHTML(w, status, buf.String())
}

// errorLocals builds the locals of an error template: status, message and
// path, overridden by the handler's own locals.
func errorLocals(r *http.Request, status int, cause error, extra map[string]any) map[string]any {
	message := defaultMessages[status]
	if message == "" {
		message = http.StatusText(status)
	}
	if httpErr := AsHTTPError(cause); httpErr != nil && httpErr.Message != "" {
		message = httpErr.Message
	}

	locals := map[string]any{
		"status":  status,
		"message": message,
		"path":    r.URL.Path,
	}
	if cause != nil {
		locals["error"] = cause.Error()
	}
	maps.Copy(locals, extra)
	return locals
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", htmlContentType)
	w.WriteHeader(status)
	if body != "" {
		_, _ = io.WriteString(w, body)
	}
}
