package internal_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hyraft/internal"
	"github.com/dmitrymomot/hyraft/pkg/logger"
)

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("graceful shutdown runs hooks", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var hooks, cleanups atomic.Int32
		app := internal.New(
			internal.WithLogger(logger.NewNope()),
			internal.WithCleanup(func(context.Context) error { cleanups.Add(1); return nil }),
		)

		done := make(chan error, 1)
		go func() {
			done <- app.Run("127.0.0.1:0",
				internal.WithContext(ctx),
				internal.ShutdownTimeout(time.Second),
				internal.StartupHook(func(context.Context) error { cancel(); return nil }),
				internal.ShutdownHook(func(context.Context) error { hooks.Add(1); return nil }),
			)
		}()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
		}
		assert.Equal(t, int32(1), hooks.Load())
		assert.Equal(t, int32(1), cleanups.Load())
	})

	t.Run("startup hook failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		app := internal.New(internal.WithLogger(logger.NewNope()))
		err := app.Run("127.0.0.1:0", internal.StartupHook(func(context.Context) error { return boom }))
		require.ErrorIs(t, err, internal.ErrStartup)
		require.ErrorIs(t, err, boom)
	})

	t.Run("shutdown hook errors are returned", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		boom := errors.New("close failed")
		app := internal.New(internal.WithLogger(logger.NewNope()))
		err := app.Run("127.0.0.1:0",
			internal.WithContext(ctx),
			internal.StartupHook(func(context.Context) error { cancel(); return nil }),
			internal.ShutdownHook(func(context.Context) error { return boom }),
		)
		require.ErrorIs(t, err, boom)
	})
}
