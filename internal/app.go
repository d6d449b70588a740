package internal

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/hyraft/pkg/health"
	"github.com/dmitrymomot/hyraft/pkg/livereload"
	"github.com/dmitrymomot/hyraft/pkg/router"
)

// Default server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// Middleware wraps an http.Handler.
type Middleware func(next http.Handler) http.Handler

// App wires the web and API dispatchers, static files, health endpoints and
// live reload onto a chi router.
// App is immutable after creation - all configuration is done via New().
type App struct {
	router         chi.Router
	compiler       Compiler
	webRoutes      *router.Web[WebHandlerFunc]
	apiRoutes      *router.API[APIHandlerFunc]
	apiPrefix      string
	errorTemplates map[int]string
	healthConfig   *healthConfig
	hub            *livereload.Hub
	hubPath        string
	logger         *slog.Logger
	middlewares    []Middleware
	staticRoutes   []staticRoute
	shutdownHooks  []func(context.Context) error
}

// staticRoute represents a static file handler mount point.
type staticRoute struct {
	fsys    fs.FS
	pattern string
}

// New creates a new application with the given options.
//
// Example:
//
//	app := hyraft.New(
//	    hyraft.WithCompiler(c),
//	    hyraft.WithWebRoutes(web),
//	    hyraft.WithAPIRoutes(api),
//	    hyraft.WithStaticFiles("/", os.DirFS("."), "public"),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:         chi.NewRouter(),
		apiPrefix:      DefaultAPIPrefix,
		errorTemplates: make(map[int]string),
		hubPath:        livereload.DefaultPath,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.setupRoutes()
	return a
}

// Router returns the underlying chi.Router for the App.
func (a *App) Router() chi.Router {
	return a.router
}

// ServeHTTP makes App an http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Run starts the HTTP server and blocks until shutdown.
//
// Example:
//
//	err := app.Run(":8080", hyraft.Logger(log))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.logger == nil {
		cfg.logger = a.logger
	}

	shutdownHooks := append(cfg.shutdownHooks, a.shutdownHooks...)
	if a.hub != nil {
		hub := a.hub
		shutdownHooks = append([]func(context.Context) error{func(context.Context) error { return hub.Close() }}, shutdownHooks...)
	}

	return runServer(runtimeConfig{
		handler:         a.router,
		address:         addr,
		logger:          cfg.logger,
		timeouts:        cfg.timeouts,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

// setupRoutes configures the router with middleware and dispatchers.
func (a *App) setupRoutes() {
	for _, mw := range a.middlewares {
		a.router.Use(mw)
	}

	web := http.Handler(NewWebDispatcher(a.webRoutes, a.compiler, a.errorTemplates, a.logger))

	for _, sr := range a.staticRoutes {
		files := a.staticHandler(sr.fsys)
		if sr.pattern == "/" {
			web = withStaticFallback(sr.fsys, files, web)
			continue
		}
		a.router.Mount(sr.pattern, http.StripPrefix(strings.TrimRight(sr.pattern, "/"), files))
	}

	if a.healthConfig != nil {
		checks := a.healthConfig.checks
		if hc, ok := a.compiler.(interface{ Healthcheck(context.Context) error }); ok {
			if _, exists := checks["templates"]; !exists {
				checks["templates"] = hc.Healthcheck
			}
		}
		a.router.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.router.Get(a.healthConfig.readinessPath, health.ReadinessHandler(checks, health.WithLogger(a.logger)))
	}

	if a.hub != nil {
		a.router.Handle(a.hubPath, a.hub)
	}

	if a.apiRoutes != nil {
		a.router.Mount(a.apiPrefix, NewAPIDispatcher(a.apiRoutes, a.apiPrefix, a.logger))
	}

	a.router.Handle("/*", web)
}

// staticHandler serves files from fsys. Directory listings are disabled.
// Files are cached for an hour unless live reload is on.
func (a *App) staticHandler(fsys fs.FS) http.Handler {
	fileServer := http.FileServerFS(fsys)
	cacheControl := "public, max-age=3600"
	if a.hub != nil {
		cacheControl = "no-cache"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Block directory listings
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Cache-Control", cacheControl)
		w.Header().Set("X-Content-Type-Options", "nosniff")

		fileServer.ServeHTTP(w, r)
	})
}

// withStaticFallback serves existing regular files from fsys and passes
// every other request to next.
func withStaticFallback(fsys fs.FS, files, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			name := strings.TrimPrefix(r.URL.Path, "/")
			if name != "" && fs.ValidPath(name) {
				if info, err := fs.Stat(fsys, name); err == nil && info.Mode().IsRegular() {
					files.ServeHTTP(w, r)
					return
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during readiness probe.
//
// Example:
//
//	hyraft.WithReadinessCheck("redis", redis.Healthcheck(client))
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		c.checks[name] = fn
	}
}
