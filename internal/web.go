package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/hyraft/pkg/renderer"
	"github.com/dmitrymomot/hyraft/pkg/router"
)

// WebDispatcher serves HTML pages for the routes of a web router.
type WebDispatcher struct {
	routes *router.Web[WebHandlerFunc]
	pages  *errorPages
	logger *slog.Logger
}

// NewWebDispatcher creates a dispatcher rendering through c. errorTemplates
// maps statuses to custom error templates and may be nil.
func NewWebDispatcher(routes *router.Web[WebHandlerFunc], c Compiler, errorTemplates map[int]string, logger *slog.Logger) *WebDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if routes == nil {
		routes = router.NewWeb[WebHandlerFunc]()
	}
	return &WebDispatcher{
		routes: routes,
		pages:  &errorPages{compiler: c, templates: errorTemplates, logger: logger},
		logger: logger,
	}
}

func (d *WebDispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route, params, ok := d.routes.Resolve(r.Method, r.URL.Path)
	if !ok {
		d.pages.write(w, r, http.StatusNotFound, nil, nil)
		return
	}

	res, err := callWeb(route.Handler, newRequest(r, params, route.Meta))
	if err != nil {
		status := StatusOf(err)
		d.log(r, status, "web handler failed", err)
		d.pages.write(w, r, status, err, res.Locals)
		return
	}

	status := res.Status
	if status == 0 {
		status = http.StatusOK
	}

	display := res.Display
	if display == "" && status < http.StatusMultipleChoices {
		display = route.Template
	}
	if display != "" {
		d.display(w, r, status, display, res)
		return
	}

	if status >= http.StatusMultipleChoices && status < http.StatusBadRequest && res.Headers.Get("Location") != "" {
		copyHeaders(w, res.Headers)
		w.WriteHeader(status)
		return
	}

	if status >= http.StatusBadRequest {
		d.pages.write(w, r, status, nil, res.Locals)
		return
	}

	copyHeaders(w, res.Headers)
	writeHTML(w, status, "")
}

func (d *WebDispatcher) display(w http.ResponseWriter, r *http.Request, status int, name string, res Result) {
	var opts []renderer.RenderOption
	if res.ViewModel != nil {
		opts = append(opts, renderer.WithViewModel(res.ViewModel))
	}

	html, err := Compile(r.Context(), d.pages.compiler, name, res.Locals, opts...)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, renderer.ErrTemplateNotFound) {
			code = http.StatusNotFound
		}
		d.log(r, code, "render failed", err, slog.String("template", name))
		d.pages.write(w, r, code, err, nil)
		return
	}

	copyHeaders(w, res.Headers)
	writeHTML(w, status, html)
}

func (d *WebDispatcher) log(r *http.Request, status int, msg string, err error, attrs ...slog.Attr) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	attrs = append(attrs,
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.String("error", err.Error()),
	)
	d.logger.LogAttrs(r.Context(), level, msg, attrs...)
}

// Compile renders name through c, failing when no compiler is configured.
func Compile(ctx context.Context, c Compiler, name string, locals map[string]any, opts ...renderer.RenderOption) (string, error) {
	if c == nil {
		return "", ErrNoCompiler
	}
	return c.Compile(ctx, name, locals, opts...)
}

// callWeb turns a handler panic into an error.
func callWeb(h WebHandlerFunc, req *Request) (res Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, rec)
		}
	}()
	return h(req)
}
