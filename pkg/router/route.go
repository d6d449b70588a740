package router

import "strings"

// Meta is the optional data attached to a route.
type Meta struct {
	// Action names the handler method or operation.
	Action string
	// Template is the template a web handler renders by default.
	Template string
}

// Option sets route metadata.
type Option func(*Meta)

// Action names the operation behind a route.
func Action(name string) Option {
	return func(m *Meta) { m.Action = name }
}

// Template sets the default template of a web route.
func Template(name string) Option {
	return func(m *Meta) { m.Template = name }
}

// Route is a registered route.
type Route[H any] struct {
	Meta
	Method  string
	Path    string
	Handler H
}

func newRoute[H any](method, path string, h H, opts []Option) Route[H] {
	r := Route[H]{Method: strings.ToUpper(method), Path: path, Handler: h}
	for _, opt := range opts {
		opt(&r.Meta)
	}
	return r
}

type freezer struct {
	frozen bool
}

// Freeze stops further registration.
func (f *freezer) Freeze() { f.frozen = true }

// Frozen reports whether registration is closed.
func (f *freezer) Frozen() bool { return f.frozen }

func (f *freezer) check() {
	if f.frozen {
		panic(ErrFrozen)
	}
}
