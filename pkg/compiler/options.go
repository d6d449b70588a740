package compiler

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/hyraft/pkg/cache"
	"github.com/dmitrymomot/hyraft/pkg/display"
	"github.com/dmitrymomot/hyraft/pkg/renderer"
)

// Option configures a Compiler.
type Option func(*Compiler)

// WithRoot sets the directory backing the file system. Watch needs it.
func WithRoot(dir string) Option {
	return func(c *Compiler) { c.root = dir }
}

// WithLayout sets the layout path. Default: public/index.html.
func WithLayout(path string) Option {
	return func(c *Compiler) {
		if path != "" {
			c.layout = path
		}
	}
}

// WithFinder sets the template finder.
func WithFinder(f *display.Finder) Option {
	return func(c *Compiler) {
		if f != nil {
			c.finder = f
		}
	}
}

// WithRenderer sets the renderer. By default one is built around the finder.
func WithRenderer(r *renderer.Renderer) Option {
	return func(c *Compiler) {
		if r != nil {
			c.renderer = r
		}
	}
}

// WithPageCache stores precompiled pages in pc with ttl. A negative ttl
// keeps pages until they are invalidated.
func WithPageCache(pc cache.Cache[string], ttl time.Duration) Option {
	return func(c *Compiler) {
		if pc != nil {
			c.pages = pc
			c.pageTTL = ttl
		}
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Compiler) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDevMode injects the live reload client for a hub mounted at path.
func WithDevMode(path string) Option {
	return func(c *Compiler) { c.reload = path }
}

// WithDebounce sets how long Watch waits for more events before reporting.
// Default: 100ms.
func WithDebounce(d time.Duration) Option {
	return func(c *Compiler) {
		if d > 0 {
			c.debounce = d
		}
	}
}
