package router

import (
	"net/http"
	"slices"
	"strings"
)

type tier int

const (
	tierExact tier = iota
	tierParam
	tierWildcard
)

type webRoute[H any] struct {
	Route[H]
	tier     tier
	segments []string
	wildcard int
}

// Web matches literal paths, then ":name" paths, then trailing "*" paths.
type Web[H any] struct {
	freezer
	routes []webRoute[H]
}

// NewWeb creates an empty Web table.
func NewWeb[H any]() *Web[H] {
	return &Web[H]{}
}

// DrawWeb builds a Web table with fn and freezes it.
func DrawWeb[H any](fn func(r *Web[H])) *Web[H] {
	r := NewWeb[H]()
	fn(r)
	r.Freeze()
	return r
}

// Handle registers h for method and path.
func (w *Web[H]) Handle(method, path string, h H, opts ...Option) {
	w.check()
	path = Normalize(path)
	r := webRoute[H]{
		Route:    newRoute(method, path, h, opts),
		segments: split(path),
		wildcard: -1,
	}
	switch {
	case strings.Contains(path, "*"):
		r.tier = tierWildcard
		r.wildcard = slices.Index(r.segments, "*")
	case strings.Contains(path, ":"):
		r.tier = tierParam
	default:
		r.tier = tierExact
	}
	w.routes = append(w.routes, r)
}

func (w *Web[H]) GET(path string, h H, opts ...Option)    { w.Handle(http.MethodGet, path, h, opts...) }
func (w *Web[H]) POST(path string, h H, opts ...Option)   { w.Handle(http.MethodPost, path, h, opts...) }
func (w *Web[H]) PUT(path string, h H, opts ...Option)    { w.Handle(http.MethodPut, path, h, opts...) }
func (w *Web[H]) PATCH(path string, h H, opts ...Option)  { w.Handle(http.MethodPatch, path, h, opts...) }
func (w *Web[H]) DELETE(path string, h H, opts ...Option) { w.Handle(http.MethodDelete, path, h, opts...) }

// Resolve finds the route for method and path.
func (w *Web[H]) Resolve(method, path string) (*Route[H], []string, bool) {
	method = strings.ToUpper(method)
	path = Normalize(path)

	for i := range w.routes {
		r := &w.routes[i]
		if r.tier == tierExact && r.Method == method && r.Path == path {
			return &r.Route, []string{}, true
		}
	}

	segs := split(path)
	for i := range w.routes {
		r := &w.routes[i]
		if r.tier != tierParam || r.Method != method {
			continue
		}
		if params, ok := matchParams(r.segments, segs); ok {
			return &r.Route, params, true
		}
	}
	for i := range w.routes {
		r := &w.routes[i]
		if r.tier != tierWildcard || r.wildcard < 0 || r.Method != method {
			continue
		}
		if rest, ok := matchWildcard(r.segments[:r.wildcard], segs); ok {
			return &r.Route, []string{rest}, true
		}
	}
	return nil, nil, false
}

// Routes returns the registered routes in registration order.
func (w *Web[H]) Routes() []Route[H] {
	out := make([]Route[H], len(w.routes))
	for i, r := range w.routes {
		out[i] = r.Route
	}
	return out
}

// Normalize strips trailing slashes, keeping "/" for the root.
func Normalize(path string) string {
	path = strings.TrimRight(path, "/")
	if path == "" {
		return "/"
	}
	return path
}

func split(path string) []string {
	if path == "/" {
		return []string{""}
	}
	return strings.Split(path, "/")
}

func matchParams(route, req []string) ([]string, bool) {
	if len(route) != len(req) {
		return nil, false
	}
	params := []string{}
	for i, seg := range route {
		if strings.HasPrefix(seg, ":") {
			params = append(params, req[i])
			continue
		}
		if seg != req[i] {
			return nil, false
		}
	}
	return params, true
}

// matchWildcard checks the literal prefix and returns the remaining request
// segments joined by "/".
func matchWildcard(prefix, req []string) (string, bool) {
	if len(req) < len(prefix) {
		return "", false
	}
	for i, seg := range prefix {
		if seg != req[i] {
			return "", false
		}
	}
	return strings.Join(req[len(prefix):], "/"), true
}
