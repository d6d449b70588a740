package internal

import (
	"context"
	"io/fs"
	"log/slog"

	"github.com/dmitrymomot/hyraft/pkg/health"
	"github.com/dmitrymomot/hyraft/pkg/livereload"
	"github.com/dmitrymomot/hyraft/pkg/router"
)

// Option configures the application.
type Option func(*App)

// WithCompiler sets the template compiler used for pages and error pages.
func WithCompiler(c Compiler) Option {
	return func(a *App) {
		a.compiler = c
	}
}

// WithWebRoutes sets the routes served as HTML pages.
//
// Example:
//
//	hyraft.WithWebRoutes(router.DrawWeb(func(r *router.Web[hyraft.WebHandlerFunc]) {
//	    r.GET("/", home.Index)
//	    r.GET("/articles/:id", articles.Show, router.Template("articles/show"))
//	}))
func WithWebRoutes(r *router.Web[WebHandlerFunc]) Option {
	return func(a *App) {
		a.webRoutes = r
	}
}

// WithAPIRoutes sets the routes served as JSON below the API prefix.
func WithAPIRoutes(r *router.API[APIHandlerFunc]) Option {
	return func(a *App) {
		a.apiRoutes = r
	}
}

// WithAPIPrefix sets where API routes are mounted.
// Defaults to "/api".
func WithAPIPrefix(prefix string) Option {
	return func(a *App) {
		if prefix != "" && prefix != "/" {
			a.apiPrefix = prefix
		}
	}
}

// WithErrorTemplate renders template name for responses with status.
// The template gets the locals status, message and path. When it fails to
// render the built-in error page is served instead.
func WithErrorTemplate(status int, name string) Option {
	return func(a *App) {
		a.errorTemplates[status] = name
	}
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithStaticFiles serves the files under subDir of fsys at pattern.
// Directory listings are disabled. With pattern "/" files are served from
// the site root when they exist and every other path goes to the web
// routes.
//
// Example:
//
//	hyraft.WithStaticFiles("/", os.DirFS(root), "public")
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		subFS, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}
		a.staticRoutes = append(a.staticRoutes, staticRoute{fsys: subFS, pattern: pattern})
	}
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live): Always returns OK if process is running.
// Readiness (/health/ready): Runs all configured checks, plus the
// compiler's layout check when it has one.
//
// Example:
//
//	hyraft.WithHealthChecks(
//	    hyraft.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			checks:        make(health.Checks),
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLiveReload serves hub at path ("" keeps livereload.DefaultPath) and
// turns off static file caching.
func WithLiveReload(hub *livereload.Hub, path string) Option {
	return func(a *App) {
		a.hub = hub
		if path != "" {
			a.hubPath = path
		}
	}
}

// WithLogger sets the application logger.
// If nil, slog.Default() is kept.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithCleanup registers a function run on shutdown after the server stops,
// such as closing the compiler or a Redis client.
func WithCleanup(fn func(context.Context) error) Option {
	return func(a *App) {
		if fn != nil {
			a.shutdownHooks = append(a.shutdownHooks, fn)
		}
	}
}
