package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hyraft/pkg/redis"
)

func TestOpen_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, err := redis.Open(ctx, "")
	require.ErrorIs(t, err, redis.ErrEmptyConnectionURL)

	for _, url := range []string{"http://localhost:6379", "localhost:6379", "postgres://localhost"} {
		_, err := redis.Open(ctx, url)
		require.ErrorIs(t, err, redis.ErrFailedToParseURL, url)
	}
}

func TestOpen_Unreachable(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := redis.Open(ctx, "redis://127.0.0.1:1/0",
		redis.WithRetry(1, time.Millisecond),
		redis.WithTimeouts(0, 0, 100*time.Millisecond),
	)
	require.ErrorIs(t, err, redis.ErrConnectionFailed)
}

func TestHealthcheck_NilClient(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, redis.Healthcheck(nil)(context.Background()), redis.ErrHealthcheckFailed)
}

type closer struct{ closed bool }

func (c *closer) Close() error {
	c.closed = true
	return errors.New("closed")
}

func TestShutdown(t *testing.T) {
	t.Parallel()

	c := &closer{}
	require.Error(t, redis.Shutdown(c)(context.Background()))
	require.True(t, c.closed)
}
