package redis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type config struct {
	poolSize      int
	retryAttempts int
	retryInterval time.Duration
	readTimeout   time.Duration
	writeTimeout  time.Duration
	dialTimeout   time.Duration
	logger        *slog.Logger
}

// Option configures Open.
type Option func(*config)

// WithPoolSize sets the connection pool size. Default: 10.
func WithPoolSize(n int) Option {
	return func(c *config) { c.poolSize = n }
}

// WithRetry sets the number of connection attempts and the base wait
// between them. Default: 3 attempts, 2 seconds.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(c *config) {
		c.retryAttempts = attempts
		c.retryInterval = interval
	}
}

// WithTimeouts sets read, write and dial timeouts. Zero keeps the default.
func WithTimeouts(read, write, dial time.Duration) Option {
	return func(c *config) {
		if read > 0 {
			c.readTimeout = read
		}
		if write > 0 {
			c.writeTimeout = write
		}
		if dial > 0 {
			c.dialTimeout = dial
		}
	}
}

// WithLogger reports failed connection attempts.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// Open connects to the redis:// or rediss:// URL and verifies the connection.
func Open(ctx context.Context, url string, opts ...Option) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrFailedToParseURL
	}

	cfg := config{
		poolSize:      10,
		retryAttempts: 3,
		retryInterval: 2 * time.Second,
		readTimeout:   3 * time.Second,
		writeTimeout:  3 * time.Second,
		dialTimeout:   5 * time.Second,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	ropts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}
	ropts.PoolSize = cfg.poolSize
	ropts.ReadTimeout = cfg.readTimeout
	ropts.WriteTimeout = cfg.writeTimeout
	ropts.DialTimeout = cfg.dialTimeout

	var lastErr error
	for attempt := range max(cfg.retryAttempts, 1) {
		client := redis.NewClient(ropts)
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
		_ = client.Close()
		cfg.logger.WarnContext(ctx, "redis connection attempt failed",
			slog.Int("attempt", attempt+1),
			slog.String("error", lastErr.Error()),
		)

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrConnectionFailed, ctx.Err())
		case <-time.After(time.Duration(attempt+1) * cfg.retryInterval):
		}
	}
	return nil, errors.Join(ErrConnectionFailed, lastErr)
}

// Healthcheck returns a readiness check that pings the server.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Shutdown returns a shutdown hook closing client.
func Shutdown(client io.Closer) func(context.Context) error {
	return func(context.Context) error {
		return client.Close()
	}
}
