package router

import (
	"net/http"
	"regexp"
	"strings"
)

var paramRe = regexp.MustCompile(`:([a-zA-Z_]\w*)`)

type apiRoute[H any] struct {
	Route[H]
	re *regexp.Regexp
}

// API matches exact paths first and ":name" patterns second.
type API[H any] struct {
	freezer
	routes []apiRoute[H]
}

// NewAPI creates an empty API table.
func NewAPI[H any]() *API[H] {
	return &API[H]{}
}

// DrawAPI builds an API table with fn and freezes it.
func DrawAPI[H any](fn func(r *API[H])) *API[H] {
	r := NewAPI[H]()
	fn(r)
	r.Freeze()
	return r
}

// Handle registers h for method and path.
func (a *API[H]) Handle(method, path string, h H, opts ...Option) {
	a.check()
	a.routes = append(a.routes, apiRoute[H]{
		Route: newRoute(method, path, h, opts),
		re:    compilePattern(path),
	})
}

func (a *API[H]) GET(path string, h H, opts ...Option)    { a.Handle(http.MethodGet, path, h, opts...) }
func (a *API[H]) POST(path string, h H, opts ...Option)   { a.Handle(http.MethodPost, path, h, opts...) }
func (a *API[H]) PUT(path string, h H, opts ...Option)    { a.Handle(http.MethodPut, path, h, opts...) }
func (a *API[H]) PATCH(path string, h H, opts ...Option)  { a.Handle(http.MethodPatch, path, h, opts...) }
func (a *API[H]) DELETE(path string, h H, opts ...Option) { a.Handle(http.MethodDelete, path, h, opts...) }

// Resolve finds the route for method and path. The query string is ignored.
// Captures are returned in the order they appear in the pattern.
func (a *API[H]) Resolve(method, path string) (*Route[H], []string, bool) {
	method = strings.ToUpper(method)
	path, _, _ = strings.Cut(path, "?")

	for i := range a.routes {
		r := &a.routes[i]
		if r.Method == method && r.Path == path {
			return &r.Route, []string{}, true
		}
	}
	for i := range a.routes {
		r := &a.routes[i]
		if r.Method != method {
			continue
		}
		if m := r.re.FindStringSubmatch(path); m != nil {
			return &r.Route, m[1:], true
		}
	}
	return nil, nil, false
}

// Routes returns the registered routes in registration order.
func (a *API[H]) Routes() []Route[H] {
	out := make([]Route[H], len(a.routes))
	for i, r := range a.routes {
		out[i] = r.Route
	}
	return out
}

// compilePattern anchors path and turns every ":name" into a one-segment
// capture. Everything else matches literally.
func compilePattern(path string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("^")
	last := 0
	for _, loc := range paramRe.FindAllStringIndex(path, -1) {
		b.WriteString(regexp.QuoteMeta(path[last:loc[0]]))
		b.WriteString(`([^/]+)`)
		last = loc[1]
	}
	b.WriteString(regexp.QuoteMeta(path[last:]))
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}
