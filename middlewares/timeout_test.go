package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookies"
	"github.com/dmitrymomot/cookies/middlewares"
)

func TestTimeout(t *testing.T) {
	t.Parallel()

	t.Run("completes within timeout", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := serve(t, req, func(c cookies.Context) error {
			require.NoError(t, c.SetCookie(&http.Cookie{Name: "fast", Value: "1"}))
			return c.String(http.StatusOK, "ok")
		}, middlewares.Timeout(time.Second))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, []string{"fast=1"}, rec.Header().Values("Set-Cookie"))
	})

	t.Run("returns TimeoutError and sends no cookies", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		defer close(release)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := serve(t, req, func(c cookies.Context) error {
			jar, err := c.Cookies()
			require.NoError(t, err)
			jar.Add(&http.Cookie{Name: "slow", Value: "1"})
			<-release
			return nil
		}, middlewares.Timeout(20*time.Millisecond))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.Empty(t, rec.Header().Values("Set-Cookie"))
	})

	t.Run("late handler writes are discarded", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		done := make(chan error, 1)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := serve(t, req, func(c cookies.Context) error {
			<-release
			err := c.String(http.StatusOK, "late")
			done <- err
			return err
		}, middlewares.Timeout(20*time.Millisecond))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.Equal(t, "Service Unavailable\n", rec.Body.String())

		close(release)
		select {
		case err := <-done:
			require.ErrorIs(t, err, cookies.ErrResponseClosed)
		case <-time.After(time.Second):
			t.Fatal("handler did not finish")
		}
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.Equal(t, "Service Unavailable\n", rec.Body.String())
		require.Empty(t, rec.Header().Values("Set-Cookie"))
	})

	t.Run("exposes deadline context", func(t *testing.T) {
		t.Parallel()

		var deadline bool
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		serve(t, req, func(c cookies.Context) error {
			_, deadline = middlewares.GetTimeoutContext(c).Deadline()
			return c.NoContent(http.StatusNoContent)
		}, middlewares.Timeout(time.Second))

		require.True(t, deadline)
	})

	t.Run("non-positive duration uses default", func(t *testing.T) {
		t.Parallel()

		var remaining time.Duration
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		serve(t, req, func(c cookies.Context) error {
			d, ok := middlewares.GetTimeoutContext(c).Deadline()
			require.True(t, ok)
			remaining = time.Until(d)
			return nil
		}, middlewares.Timeout(0))

		require.Greater(t, remaining, middlewares.DefaultTimeout-time.Second)
	})
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()

	var err error = &middlewares.TimeoutError{Duration: time.Second}
	te, ok := middlewares.AsTimeoutError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusServiceUnavailable, te.StatusCode())
	require.Equal(t, "request timeout after 1s", err.Error())
	require.False(t, middlewares.IsTimeoutError(context.Canceled))
}
