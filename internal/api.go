package internal

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/hyraft/pkg/router"
)

// DefaultAPIPrefix is where the API dispatcher is mounted.
const DefaultAPIPrefix = "/api"

// APIDispatcher serves JSON responses for the routes of an API router.
// Route patterns are matched against the path below the prefix.
type APIDispatcher struct {
	routes *router.API[APIHandlerFunc]
	prefix string
	logger *slog.Logger
}

// NewAPIDispatcher creates a dispatcher for routes mounted at prefix.
func NewAPIDispatcher(routes *router.API[APIHandlerFunc], prefix string, logger *slog.Logger) *APIDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if routes == nil {
		routes = router.NewAPI[APIHandlerFunc]()
	}
	return &APIDispatcher{
		routes: routes,
		prefix: strings.TrimRight(prefix, "/"),
		logger: logger,
	}
}

func (d *APIDispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, d.prefix)
	if path == "" {
		path = "/"
	}

	route, params, ok := d.routes.Resolve(r.Method, path)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody(http.StatusText(http.StatusNotFound)))
		return
	}

	res, err := callAPI(route.Handler, newRequest(r, params, route.Meta))
	if err != nil {
		status := StatusOf(err)
		message := http.StatusText(status)
		if httpErr := AsHTTPError(err); httpErr != nil && httpErr.Message != "" {
			message = httpErr.Message
		}
		level := slog.LevelWarn
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		d.logger.LogAttrs(r.Context(), level, "api handler failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.String("error", err.Error()),
		)
		writeJSON(w, status, errorBody(message))
		return
	}

	status := res.Status
	if status == 0 {
		status = http.StatusOK
	}
	copyHeaders(w, res.Headers)
	if res.Body == nil && (status == http.StatusNoContent || status == http.StatusNotModified) {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, status, res.Body)
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func callAPI(h APIHandlerFunc, req *Request) (res APIResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, rec)
		}
	}()
	return h(req)
}
