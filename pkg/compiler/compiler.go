package compiler

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/hyraft/pkg/cache"
	"github.com/dmitrymomot/hyraft/pkg/display"
	"github.com/dmitrymomot/hyraft/pkg/livereload"
	"github.com/dmitrymomot/hyraft/pkg/renderer"
	"github.com/dmitrymomot/hyraft/pkg/section"
)

// DefaultLayout is the layout path used when none is configured.
const DefaultLayout = "public/index.html"

// Compiler renders template files into the layout.
type Compiler struct {
	fsys     fs.FS
	root     string
	layout   string
	finder   *display.Finder
	renderer *renderer.Renderer
	pages    cache.Cache[string]
	pageTTL  time.Duration
	logger   *slog.Logger
	reload   string
	debounce time.Duration
	owned    []interface{ Close() error }

	mu        sync.RWMutex
	paths     map[string]string
	templates map[string]*section.Template
	layoutSrc *string
}

// New creates a Compiler reading from fsys.
func New(fsys fs.FS, opts ...Option) *Compiler {
	c := &Compiler{
		fsys:      fsys,
		layout:    DefaultLayout,
		pageTTL:   -1,
		logger:    slog.Default(),
		debounce:  100 * time.Millisecond,
		paths:     make(map[string]string),
		templates: make(map[string]*section.Template),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.finder == nil {
		c.finder = display.NewFinder(fsys)
	}
	if c.renderer == nil {
		c.renderer = renderer.New(renderer.WithFinder(c.finder), renderer.WithLogger(c.logger))
		c.owned = append(c.owned, c.renderer)
	}
	if c.pages == nil {
		pages := cache.NewMemory[string]()
		c.pages = pages
		c.owned = append(c.owned, pages)
	}
	return c
}

// Finder returns the template finder.
func (c *Compiler) Finder() *display.Finder { return c.finder }

// Renderer returns the renderer.
func (c *Compiler) Renderer() *renderer.Renderer { return c.renderer }

// Close releases the renderer and page cache the compiler created itself.
func (c *Compiler) Close() error {
	var errs []error
	for _, o := range c.owned {
		errs = append(errs, o.Close())
	}
	return errors.Join(errs...)
}

// Compile renders the template name with locals.
func (c *Compiler) Compile(ctx context.Context, name string, locals map[string]any, opts ...renderer.RenderOption) (string, error) {
	path, err := c.resolve(name)
	if err != nil {
		return "", err
	}

	cacheable := len(locals) == 0 && len(opts) == 0
	if cacheable {
		if html, err := c.pages.Get(ctx, path); err == nil {
			return html, nil
		}
	}

	tpl, err := c.template(path)
	if err != nil {
		return "", err
	}
	layout, err := c.loadLayout()
	if err != nil {
		return "", err
	}

	html, err := c.render(ctx, layout, tpl, locals, opts...)
	if err != nil {
		return "", fmt.Errorf("compiler: render %s: %w", path, err)
	}
	if cacheable && !tpl.HasTransmuter() {
		if err := c.pages.Set(ctx, path, html, c.pageTTL); err != nil {
			c.logger.WarnContext(ctx, "page cache write failed", slog.String("path", path), slog.String("error", err.Error()))
		}
	}
	return html, nil
}

// Preload parses every template and renders those without a transmuter
// into the page cache.
func (c *Compiler) Preload(ctx context.Context) error {
	start := time.Now()

	entries, err := c.finder.List()
	if err != nil {
		return err
	}
	layout, err := c.loadLayout()
	if err != nil {
		return err
	}

	c.mu.Lock()
	for _, e := range entries {
		if _, ok := c.paths[e.Key]; !ok {
			c.paths[e.Key] = e.Path
		}
	}
	c.mu.Unlock()

	var size, pages atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, e := range entries {
		g.Go(func() error {
			tpl, n, err := c.parse(e.Path)
			if err != nil {
				return err
			}
			size.Add(int64(n))
			if tpl.HasTransmuter() {
				return nil
			}

			html, err := c.render(gctx, layout, tpl, nil)
			if err != nil {
				return fmt.Errorf("compiler: preload %s: %w", e.Path, err)
			}
			if err := c.pages.Set(gctx, e.Path, html, c.pageTTL); err != nil {
				return fmt.Errorf("compiler: cache %s: %w", e.Path, err)
			}
			pages.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "templates preloaded",
		slog.Int("templates", len(entries)),
		slog.Int64("pages", pages.Load()),
		slog.Int64("bytes", size.Load()),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

// Invalidate drops the given file paths from the caches. Without paths
// everything is dropped. Pages are always cleared since a page may
// require any other template.
func (c *Compiler) Invalidate(ctx context.Context, paths ...string) {
	c.mu.Lock()
	if len(paths) == 0 {
		c.templates = make(map[string]*section.Template)
		c.layoutSrc = nil
	}
	for _, p := range paths {
		if p == c.layout {
			c.layoutSrc = nil
			continue
		}
		delete(c.templates, p)
	}
	c.paths = make(map[string]string)
	c.mu.Unlock()

	if err := c.pages.Clear(ctx); err != nil {
		c.logger.WarnContext(ctx, "page cache clear failed", slog.String("error", err.Error()))
	}
}

func (c *Compiler) render(ctx context.Context, layout string, tpl *section.Template, locals map[string]any, opts ...renderer.RenderOption) (string, error) {
	html, err := c.renderer.Render(ctx, layout, tpl, locals, opts...)
	if err != nil {
		return "", err
	}
	if c.reload == "" {
		return html, nil
	}
	return injectBeforeBody(html, livereload.Script(c.reload)), nil
}

func injectBeforeBody(html, script string) string {
	if i := strings.LastIndex(html, "</body>"); i >= 0 {
		return html[:i] + script + "\n" + html[i:]
	}
	return html + script
}

func (c *Compiler) resolve(name string) (string, error) {
	key := c.finder.Key(name)
	c.mu.RLock()
	p, ok := c.paths[key]
	c.mu.RUnlock()
	if ok {
		return p, nil
	}

	p, err := c.finder.Find(name)
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	c.paths[key] = p
	c.mu.Unlock()
	return p, nil
}

func (c *Compiler) template(path string) (*section.Template, error) {
	c.mu.RLock()
	tpl, ok := c.templates[path]
	c.mu.RUnlock()
	if ok {
		return tpl, nil
	}
	tpl, _, err := c.parse(path)
	return tpl, err
}

func (c *Compiler) parse(path string) (*section.Template, int, error) {
	data, err := fs.ReadFile(c.fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, 0, fmt.Errorf("%w: %s", display.ErrTemplateNotFound, path)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("compiler: read %s: %w", path, err)
	}

	tpl := section.Extract(string(data))
	c.mu.Lock()
	c.templates[path] = tpl
	c.mu.Unlock()
	return tpl, len(data), nil
}

func (c *Compiler) loadLayout() (string, error) {
	c.mu.RLock()
	src := c.layoutSrc
	c.mu.RUnlock()
	if src != nil {
		return *src, nil
	}

	data, err := fs.ReadFile(c.fsys, c.layout)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrLayoutNotFound, c.layout)
	}
	if err != nil {
		return "", fmt.Errorf("compiler: read layout %s: %w", c.layout, err)
	}

	layout := string(data)
	c.mu.Lock()
	c.layoutSrc = &layout
	c.mu.Unlock()
	return layout, nil
}

// Healthcheck reports whether the layout can be loaded.
func (c *Compiler) Healthcheck(context.Context) error {
	_, err := c.loadLayout()
	return err
}
