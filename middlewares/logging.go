package middlewares

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/hyraft/internal"
)

// LoggingOption configures the request logging middleware.
type LoggingOption func(*loggingConfig)

type loggingConfig struct {
	skip []string
}

// WithSkipPaths excludes requests whose path starts with any prefix, such
// as health probes or the live reload socket.
func WithSkipPaths(prefixes ...string) LoggingOption {
	return func(cfg *loggingConfig) {
		cfg.skip = append(cfg.skip, prefixes...)
	}
}

// Logging returns middleware that logs one record per request with method,
// path, status, size and duration. 5xx responses log at error level, 4xx
// at warn, everything else at info.
func Logging(log *slog.Logger, opts ...LoggingOption) internal.Middleware {
	if log == nil {
		log = slog.Default()
	}
	cfg := &loggingConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, p := range cfg.skip {
				if strings.HasPrefix(r.URL.Path, p) {
					next.ServeHTTP(w, r)
					return
				}
			}

			start := time.Now()
			rw := internal.NewResponseWriter(w)
			next.ServeHTTP(rw, r)

			status := rw.Status()
			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}
			log.LogAttrs(r.Context(), level, "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int64("size", rw.Size()),
				slog.Duration("duration", time.Since(start)),
				slog.String("remote", r.RemoteAddr),
			)
		})
	}
}
