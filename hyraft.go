package hyraft

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/hyraft/internal"
	"github.com/dmitrymomot/hyraft/pkg/health"
	"github.com/dmitrymomot/hyraft/pkg/livereload"
	"github.com/dmitrymomot/hyraft/pkg/router"
)

// Type aliases - public API
type (
	// App wires the dispatchers, static files and health endpoints.
	// It manages HTTP routing, middleware, and graceful shutdown.
	App = internal.App

	// Request is the matched request handed to handlers.
	Request = internal.Request

	// Result is the envelope a web handler returns.
	Result = internal.Result

	// APIResult is the envelope an API handler returns.
	APIResult = internal.APIResult

	// WebHandlerFunc handles a request matched by the web router.
	WebHandlerFunc = internal.WebHandlerFunc

	// APIHandlerFunc handles a request matched by the API router.
	APIHandlerFunc = internal.APIHandlerFunc

	// WebRouter is the route table for pages.
	WebRouter = router.Web[WebHandlerFunc]

	// APIRouter is the route table for JSON endpoints.
	APIRouter = router.API[APIHandlerFunc]

	// Compiler renders a template by name.
	Compiler = internal.Compiler

	// Middleware wraps an http.Handler to add cross-cutting concerns.
	Middleware = internal.Middleware

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// Timeouts are the HTTP server timeouts.
	Timeouts = internal.Timeouts

	// HTTPError is an error with an HTTP status code.
	HTTPError = internal.HTTPError

	// ResponseWriter wraps http.ResponseWriter with status tracking and hooks.
	ResponseWriter = internal.ResponseWriter
)

// Constructors

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := hyraft.New(
//	    hyraft.WithCompiler(c),
//	    hyraft.WithWebRoutes(hyraft.DrawWeb(func(r *hyraft.WebRouter) {
//	        r.GET("/articles/:id", showArticle, hyraft.Template("articles/show"))
//	    })),
//	)
//
//	err := app.Run(":8080", hyraft.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// DrawWeb builds and freezes a web route table.
func DrawWeb(fn func(r *WebRouter)) *WebRouter {
	return router.DrawWeb(fn)
}

// DrawAPI builds and freezes an API route table.
func DrawAPI(fn func(r *APIRouter)) *APIRouter {
	return router.DrawAPI(fn)
}

// Action names the controller action of a route.
func Action(name string) router.Option {
	return router.Action(name)
}

// Template sets the template a route displays when its handler leaves
// Result.Display empty.
func Template(name string) router.Option {
	return router.Template(name)
}

// Results

// Render returns a 200 Result displaying name with locals.
func Render(name string, locals map[string]any) Result {
	return internal.Render(name, locals)
}

// Redirect returns a Result redirecting to url.
func Redirect(status int, url string) Result {
	return internal.Redirect(status, url)
}

// Status returns a Result with only a status code.
func Status(code int) Result {
	return internal.Status(code)
}

// JSON returns an APIResult encoding body with status.
func JSON(status int, body any) APIResult {
	return internal.JSON(status, body)
}

// Param converts the i-th positional route capture to T.
func Param[T ~string | ~int | ~int64 | ~float64 | ~bool](r *Request, i int) T {
	return internal.Param[T](r, i)
}

// Query converts query parameter name to T.
func Query[T ~string | ~int | ~int64 | ~float64 | ~bool](r *Request, name string) T {
	return internal.Query[T](r, name)
}

// QueryDefault converts query parameter name to T, returning defaultValue
// when it is missing or does not convert.
func QueryDefault[T ~string | ~int | ~int64 | ~float64 | ~bool](r *Request, name string, defaultValue T) T {
	return internal.QueryDefault(r, name, defaultValue)
}

// App options

// WithCompiler sets the template compiler used by the web dispatcher.
func WithCompiler(c Compiler) Option {
	return internal.WithCompiler(c)
}

// WithWebRoutes sets the web route table.
func WithWebRoutes(r *WebRouter) Option {
	return internal.WithWebRoutes(r)
}

// WithAPIRoutes sets the API route table.
func WithAPIRoutes(r *APIRouter) Option {
	return internal.WithAPIRoutes(r)
}

// WithAPIPrefix sets the path the API dispatcher is mounted at.
func WithAPIPrefix(prefix string) Option {
	return internal.WithAPIPrefix(prefix)
}

// WithErrorTemplate renders template name for responses with status.
func WithErrorTemplate(status int, name string) Option {
	return internal.WithErrorTemplate(status, name)
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled. Mounted at "/", requests for missing
// files fall through to the web routes.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	hyraft.New(
//	    hyraft.WithStaticFiles("/", assets, "public"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live): Always returns OK if process is running.
// Readiness (/health/ready): Runs all configured checks.
//
// Example:
//
//	hyraft.WithHealthChecks(
//	    hyraft.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLiveReload serves hub at path. Static files are then sent with
// no-cache headers.
func WithLiveReload(hub *livereload.Hub, path string) Option {
	return internal.WithLiveReload(hub, path)
}

// WithLogger sets the logger used by the dispatchers.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithCleanup registers a function run on shutdown.
func WithCleanup(fn func(context.Context) error) Option {
	return internal.WithCleanup(fn)
}

// Health options

// WithLivenessPath sets the liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets the readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the logger for server lifecycle events.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ServerTimeouts overrides the HTTP server timeouts.
func ServerTimeouts(t Timeouts) RunOption {
	return internal.ServerTimeouts(t)
}

// ShutdownTimeout sets the maximum duration to wait for graceful shutdown.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function called after the listener is bound.
// The context is cancelled when shutdown begins.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a function called during graceful shutdown.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context for the server.
// Cancelling it starts graceful shutdown.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Errors

// NewHTTPError creates an HTTP error with a status code and message.
func NewHTTPError(code int, message string, opts ...internal.HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// ErrNotFound returns a 404 HTTP error.
func ErrNotFound(message string) *HTTPError {
	return internal.ErrNotFound(message)
}

// ErrBadRequest returns a 400 HTTP error.
func ErrBadRequest(message string) *HTTPError {
	return internal.ErrBadRequest(message)
}

// ErrInternal returns a 500 HTTP error.
func ErrInternal(message string) *HTTPError {
	return internal.ErrInternal(message)
}

// StatusOf returns the HTTP status an error maps to.
func StatusOf(err error) int {
	return internal.StatusOf(err)
}

// Ensure App serves HTTP directly, for tests and custom servers.
var _ http.Handler = (*App)(nil)
