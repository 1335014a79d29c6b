package internal_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookies/internal"
)

func TestApp_Run(t *testing.T) {
	t.Parallel()

	t.Run("startup hook failure stops run", func(t *testing.T) {
		t.Parallel()

		want := errors.New("key not loaded")
		err := internal.New().Run("127.0.0.1:0",
			internal.StartupHook(func(context.Context) error { return nil }),
			internal.StartupHook(func(context.Context) error { return want }),
		)
		require.ErrorIs(t, err, want)
	})

	t.Run("context cancel shuts down and runs hooks", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		var started, stopped atomic.Bool

		done := make(chan error, 1)
		go func() {
			done <- internal.New(internal.WithCookieManager()).Run("127.0.0.1:0",
				internal.WithContext(ctx),
				internal.ShutdownTimeout(time.Second),
				internal.StartupHook(func(context.Context) error {
					started.Store(true)
					return nil
				}),
				internal.ShutdownHook(func(context.Context) error {
					stopped.Store(true)
					return nil
				}),
			)
		}()

		require.Eventually(t, started.Load, time.Second, 10*time.Millisecond)
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("server did not stop")
		}
		assert.True(t, stopped.Load())
	})

	t.Run("shutdown hook errors are returned", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		want := errors.New("flush failed")
		err := internal.New().Run("127.0.0.1:0",
			internal.WithContext(ctx),
			internal.ShutdownHook(func(context.Context) error { return want }),
		)
		require.ErrorIs(t, err, want)
	})
}
