package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/dmitrymomot/hyraft/pkg/cache"
	"github.com/dmitrymomot/hyraft/pkg/compiler"
	"github.com/dmitrymomot/hyraft/pkg/config"
	"github.com/dmitrymomot/hyraft/pkg/display"
	"github.com/dmitrymomot/hyraft/pkg/health"
	"github.com/dmitrymomot/hyraft/pkg/redis"
	"github.com/dmitrymomot/hyraft/pkg/renderer"
)

// pageCachePrefix namespaces compiled pages in a shared Redis.
const pageCachePrefix = "hyraft:pages:"

// stack is the template pipeline built from the loaded config.
type stack struct {
	compiler *compiler.Compiler
	checks   health.Checks
	closers  []io.Closer
}

// newStack builds finder, renderer, page cache and compiler. reloadPath is
// the live reload endpoint injected into pages; empty disables it.
func (c *cli) newStack(ctx context.Context, reloadPath string) (*stack, error) {
	cfg := c.cfg
	fsys := os.DirFS(cfg.Root)
	s := &stack{checks: health.Checks{}}

	finder := display.NewFinder(fsys, display.WithRoot(cfg.Intake))
	r := renderer.New(
		renderer.WithMethod(cfg.ObfuscationMethod()),
		renderer.WithFinder(finder),
		renderer.WithStyleResolver(renderer.PublicStyles(fsys, cfg.Public)),
		renderer.WithLogger(c.log),
	)
	s.closers = append(s.closers, r)

	var pages cache.Cache[string]
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		client, err := redis.Open(ctx, cfg.Cache.RedisURL, redis.WithLogger(c.log))
		if err != nil {
			return nil, errors.Join(err, s.Close())
		}
		s.closers = append(s.closers, client)
		s.checks["redis"] = redis.Healthcheck(client)
		pages = cache.NewRedis[string](client, cache.StringMarshaler{}, cache.WithPrefix(pageCachePrefix))
	default:
		mem := cache.NewMemory[string]()
		s.closers = append(s.closers, mem)
		pages = mem
	}

	opts := []compiler.Option{
		compiler.WithRoot(cfg.Root),
		compiler.WithLayout(cfg.Layout),
		compiler.WithFinder(finder),
		compiler.WithRenderer(r),
		compiler.WithPageCache(pages, cfg.Cache.TTL),
		compiler.WithLogger(c.log),
	}
	if reloadPath != "" {
		opts = append(opts, compiler.WithDevMode(reloadPath))
	}
	s.compiler = compiler.New(fsys, opts...)
	s.closers = append(s.closers, s.compiler)
	return s, nil
}

// Close releases everything in reverse construction order.
func (s *stack) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i].Close())
	}
	return errors.Join(errs...)
}
