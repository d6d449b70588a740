package renderer

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/hyraft/pkg/display"
	"github.com/dmitrymomot/hyraft/pkg/jslib"
	"github.com/dmitrymomot/hyraft/pkg/obfuscator"
	"github.com/dmitrymomot/hyraft/pkg/transmuter"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithMethod sets how required libraries are obfuscated. Default: multi_layer.
func WithMethod(m obfuscator.Method) Option {
	return func(r *Renderer) { r.method = m }
}

// WithObfuscator sets the obfuscator used for required libraries.
func WithObfuscator(o *obfuscator.Obfuscator) Option {
	return func(r *Renderer) { r.obf = o }
}

// WithLibraries replaces the built-in library registry.
func WithLibraries(reg *jslib.Registry) Option {
	return func(r *Renderer) {
		if reg != nil {
			r.libs = reg
		}
	}
}

// WithEvaluator replaces the transmuter evaluator.
func WithEvaluator(ev transmuter.Evaluator) Option {
	return func(r *Renderer) {
		if ev != nil {
			r.eval = ev
		}
	}
}

// WithFinder enables file-based requires through f.
func WithFinder(f *display.Finder) Option {
	return func(r *Renderer) { r.finder = f }
}

// WithComponent registers a component for tag. "user-card", "user_card" and
// "display_user_card" address the same component.
func WithComponent(tag string, fn Component) Option {
	return func(r *Renderer) { r.components[componentKey(tag)] = fn }
}

// WithCallable registers a callable reachable from [.name.] placeholders,
// the transmuter call() global and the page_title lookup. A page_title
// callable returns raw text: it is HTML-escaped before it goes into
// <title>, as is a bound page_title value. Markup that must stay as
// written belongs in a <title> inside the metas section.
func WithCallable(name string, fn Callable) Option {
	return func(r *Renderer) { r.callables[name] = fn }
}

// WithStyleResolver maps <style src> paths to URLs before they are linked.
func WithStyleResolver(fn StyleResolver) Option {
	return func(r *Renderer) { r.styles = fn }
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTracer sets the tracer for render spans.
func WithTracer(t trace.Tracer) Option {
	return func(r *Renderer) {
		if t != nil {
			r.tracer = t
		}
	}
}

// ViewModel is Go code run against the scope after the transmuter section.
type ViewModel func(ctx context.Context, s *Scope) error

// RenderOption configures a single Render call.
type RenderOption func(*renderConfig)

type renderConfig struct {
	viewModels []ViewModel
}

// WithViewModel appends a view-model to the render.
func WithViewModel(fn ViewModel) RenderOption {
	return func(c *renderConfig) {
		if fn != nil {
			c.viewModels = append(c.viewModels, fn)
		}
	}
}
