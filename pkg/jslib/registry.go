package jslib

import (
	_ "embed"
	"maps"
	"slices"
	"strings"

	"github.com/dmitrymomot/hyraft/pkg/obfuscator"
)

// NeonPulse is the logical name of the built-in reactive client library.
const NeonPulse = "lib/neonpulse"

//go:embed libs/neonpulse.js
var neonPulseSource string

// Registry maps logical library names to JavaScript sources.
type Registry struct {
	libs map[string]string
}

// New builds a registry from libs. The map is copied.
func New(libs map[string]string) *Registry {
	r := &Registry{libs: make(map[string]string, len(libs))}
	for name, src := range libs {
		r.libs[normalize(name)] = src
	}
	return r
}

// Default returns a registry holding the built-in libraries.
func Default() *Registry {
	return New(map[string]string{NeonPulse: neonPulseSource})
}

// With returns a new registry with extra libraries added on top of r.
func (r *Registry) With(libs map[string]string) *Registry {
	merged := maps.Clone(r.libs)
	for name, src := range libs {
		merged[normalize(name)] = src
	}
	return &Registry{libs: merged}
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.libs[normalize(name)]
	return ok
}

// Source returns the clean source of name.
func (r *Registry) Source(name string) (string, bool) {
	src, ok := r.libs[normalize(name)]
	return src, ok
}

// Get returns the source of name obfuscated with method m.
// A nil obfuscator uses the package defaults.
func (r *Registry) Get(name string, o *obfuscator.Obfuscator, m obfuscator.Method) (string, bool) {
	src, ok := r.Source(name)
	if !ok {
		return "", false
	}
	if o == nil {
		return obfuscator.Apply(src, m), true
	}
	return o.Apply(src, m), true
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.libs))
}

func normalize(name string) string {
	return strings.TrimSuffix(strings.TrimSpace(name), ".hyr")
}
