package renderer

import (
	"maps"
	"strings"
)

// Component renders a self-closing component tag from its attributes.
type Component func(attrs Attrs) string

// Callable produces a value on demand for placeholders and Scope.Call.
type Callable func(s *Scope) string

// Attr is a single parsed tag attribute.
type Attr struct {
	Key   string
	Value string
}

// Attrs keeps attributes in the order they first appeared.
type Attrs []Attr

// Get returns the value of key.
func (a Attrs) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Value returns the value of key or an empty string.
func (a Attrs) Value(key string) string {
	v, _ := a.Get(key)
	return v
}

// Map copies the attributes into a map.
func (a Attrs) Map() map[string]string {
	m := make(map[string]string, len(a))
	for _, attr := range a {
		m[attr.Key] = attr.Value
	}
	return m
}

// Scope holds the state of a single render: locals, values set by the
// transmuter and view-models, and render-local callables and components.
// It shadows the renderer's own tables and is discarded when the render
// returns. A Scope is not safe for concurrent use.
type Scope struct {
	values     map[string]any
	callables  map[string]Callable
	components map[string]Component
	r          *Renderer
}

func newScope(r *Renderer, locals map[string]any) *Scope {
	s := &Scope{
		values:     make(map[string]any, len(locals)),
		callables:  map[string]Callable{},
		components: map[string]Component{},
		r:          r,
	}
	maps.Copy(s.values, locals)
	return s
}

// Get returns a bound value.
func (s *Scope) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Set binds a value for the rest of the render. Function values are
// registered too: func() string becomes a callable, and
// func(map[string]string) string bound to a display_* name becomes a
// component.
func (s *Scope) Set(name string, value any) {
	s.values[name] = value
	switch fn := value.(type) {
	case func() string:
		s.callables[name] = func(*Scope) string { return fn() }
	case Callable:
		s.callables[name] = fn
	case func(*Scope) string:
		s.callables[name] = fn
	case func(map[string]string) string:
		if isComponentName(name) {
			s.components[componentKey(name)] = func(a Attrs) string { return fn(a.Map()) }
		}
	case Component:
		if isComponentName(name) {
			s.components[componentKey(name)] = fn
		}
	case func(Attrs) string:
		if isComponentName(name) {
			s.components[componentKey(name)] = fn
		}
	}
}

func isComponentName(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), "display_")
}

// Values returns a copy of all bound values.
func (s *Scope) Values() map[string]any {
	return maps.Clone(s.values)
}

// SetCallable registers a callable for the rest of the render.
func (s *Scope) SetCallable(name string, fn Callable) {
	s.callables[name] = fn
}

// SetComponent registers a component for the rest of the render.
func (s *Scope) SetComponent(tag string, fn Component) {
	s.components[componentKey(tag)] = fn
}

// Call runs the named callable.
func (s *Scope) Call(name string) (string, bool) {
	fn, ok := s.callable(name)
	if !ok {
		return "", false
	}
	return fn(s), true
}

func (s *Scope) callable(name string) (Callable, bool) {
	if fn, ok := s.callables[name]; ok {
		return fn, true
	}
	if s.r != nil {
		fn, ok := s.r.callables[name]
		return fn, ok
	}
	return nil, false
}

// Component returns the component registered for tag.
func (s *Scope) Component(tag string) (Component, bool) {
	key := componentKey(tag)
	if fn, ok := s.components[key]; ok {
		return fn, true
	}
	if s.r != nil {
		fn, ok := s.r.components[key]
		return fn, ok
	}
	return nil, false
}

// componentKey maps "user-card", "user_card" and "display_user_card" to
// the same handler name.
func componentKey(tag string) string {
	key := strings.ReplaceAll(strings.ToLower(tag), "-", "_")
	if strings.HasPrefix(key, "display_") {
		return key
	}
	return "display_" + key
}
