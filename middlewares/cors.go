package middlewares

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/hyraft/internal"
)

// Preflight defaults.
var (
	DefaultCORSMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	DefaultCORSHeaders = []string{"Content-Type", "Authorization", "X-Requested-With"}
)

// DefaultCORSMaxAge is how long browsers may cache a preflight answer.
const DefaultCORSMaxAge = 24 * time.Hour

type corsConfig struct {
	methods     string
	headers     string
	expose      string
	maxAge      string
	credentials bool
	prefixes    []string
}

// CORSOption configures the CORS middleware.
type CORSOption func(*corsConfig)

// WithCORSMethods sets the methods announced to preflight requests.
func WithCORSMethods(methods ...string) CORSOption {
	return func(c *corsConfig) { c.methods = strings.Join(methods, ", ") }
}

// WithCORSHeaders sets the request headers announced to preflight requests.
func WithCORSHeaders(headers ...string) CORSOption {
	return func(c *corsConfig) { c.headers = strings.Join(headers, ", ") }
}

// WithCORSExpose sets the response headers scripts may read.
func WithCORSExpose(headers ...string) CORSOption {
	return func(c *corsConfig) { c.expose = strings.Join(headers, ", ") }
}

// WithCORSCredentials allows cookies and authorization headers. The request
// origin is echoed instead of "*".
func WithCORSCredentials() CORSOption {
	return func(c *corsConfig) { c.credentials = true }
}

// WithCORSMaxAge sets the preflight cache duration. Zero omits the header.
func WithCORSMaxAge(d time.Duration) CORSOption {
	return func(c *corsConfig) {
		c.maxAge = ""
		if d > 0 {
			c.maxAge = strconv.Itoa(int(d.Seconds()))
		}
	}
}

// WithCORSPaths limits the middleware to requests under the given path
// prefixes, such as the API mount.
func WithCORSPaths(prefixes ...string) CORSOption {
	return func(c *corsConfig) { c.prefixes = prefixes }
}

// CORS answers preflight requests and adds CORS headers to responses for
// requests from origins. "*" allows any origin.
func CORS(origins []string, opts ...CORSOption) internal.Middleware {
	cfg := &corsConfig{
		methods: strings.Join(DefaultCORSMethods, ", "),
		headers: strings.Join(DefaultCORSHeaders, ", "),
		maxAge:  strconv.Itoa(int(DefaultCORSMaxAge.Seconds())),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	wildcard := slices.Contains(origins, "*")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || !cfg.covers(r.URL.Path) || (!wildcard && !slices.Contains(origins, origin)) {
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Add("Vary", "Origin")
			if wildcard && !cfg.credentials {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
			}
			if cfg.credentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			if cfg.expose != "" {
				h.Set("Access-Control-Expose-Headers", cfg.expose)
			}

			if r.Method != http.MethodOptions || r.Header.Get("Access-Control-Request-Method") == "" {
				next.ServeHTTP(w, r)
				return
			}

			// Preflight: answered here, never dispatched.
			h.Set("Access-Control-Allow-Methods", cfg.methods)
			h.Set("Access-Control-Allow-Headers", cfg.headers)
			if cfg.maxAge != "" {
				h.Set("Access-Control-Max-Age", cfg.maxAge)
			}
			w.WriteHeader(http.StatusOK)
		})
	}
}

func (c *corsConfig) covers(path string) bool {
	if len(c.prefixes) == 0 {
		return true
	}
	return slices.ContainsFunc(c.prefixes, func(p string) bool {
		return path == p || strings.HasPrefix(path, strings.TrimRight(p, "/")+"/")
	})
}
