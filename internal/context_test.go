package internal_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookies/internal"
)

// withContext runs fn for any GET or POST with the cookie manager installed.
// Requests under /p/{id} expose an "id" URL parameter.
func withContext(t *testing.T, req *http.Request, fn internal.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	app := internal.New(
		internal.WithCookieManager(),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/p/{id}", fn)
			r.GET("/*", fn)
			r.POST("/*", fn)
		})),
	)
	return serve(app, req)
}

func TestContext_Request(t *testing.T) {
	t.Parallel()

	t.Run("params query form and headers", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/p/42?q=go&empty=", nil)
		req.Header.Set("X-Token", "abc")
		withContext(t, req, func(c internal.Context) error {
			assert.Equal(t, "42", c.Param("id"))
			assert.Equal(t, "go", c.Query("q"))
			assert.Equal(t, "fallback", c.QueryDefault("empty", "fallback"))
			assert.Equal(t, "abc", c.Header("X-Token"))
			return nil
		})
	})

	t.Run("form values", func(t *testing.T) {
		t.Parallel()

		body := url.Values{"name": {"alice"}}.Encode()
		req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		withContext(t, req, func(c internal.Context) error {
			assert.Equal(t, "alice", c.Form("name"))
			return nil
		})
	})

	t.Run("implements context.Context", func(t *testing.T) {
		t.Parallel()

		type key struct{}
		withContext(t, httptest.NewRequest(http.MethodGet, "/", nil), func(c internal.Context) error {
			c.Set(key{}, "v")
			var ctx context.Context = c
			assert.Equal(t, "v", ctx.Value(key{}))
			assert.Equal(t, "v", c.Get(key{}))
			assert.NoError(t, ctx.Err())
			return nil
		})
	})
}

func TestContext_Responses(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		rec := withContext(t, httptest.NewRequest(http.MethodGet, "/", nil), func(c internal.Context) error {
			return c.JSON(http.StatusCreated, map[string]int{"visits": 3})
		})
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"visits":3}`, rec.Body.String())
	})

	t.Run("redirect keeps cookies", func(t *testing.T) {
		t.Parallel()

		rec := withContext(t, httptest.NewRequest(http.MethodGet, "/login", nil), func(c internal.Context) error {
			require.NoError(t, c.SetCookie(&http.Cookie{Name: "flash", Value: "hi"}))
			return c.Redirect(http.StatusSeeOther, "/home")
		})
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/home", rec.Header().Get("Location"))
		assert.Equal(t, []string{"flash=hi"}, rec.Header().Values("Set-Cookie"))
	})

	t.Run("written", func(t *testing.T) {
		t.Parallel()

		withContext(t, httptest.NewRequest(http.MethodGet, "/", nil), func(c internal.Context) error {
			assert.False(t, c.Written())
			require.NoError(t, c.NoContent(http.StatusNoContent))
			assert.True(t, c.Written())
			return nil
		})
	})

	t.Run("error builder", func(t *testing.T) {
		t.Parallel()

		rec := withContext(t, httptest.NewRequest(http.MethodGet, "/", nil), func(c internal.Context) error {
			return c.Error(http.StatusUnauthorized, "login required", internal.WithErrorCode("auth"))
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "login required\n", rec.Body.String())
	})
}

func TestContext_Cookies(t *testing.T) {
	t.Parallel()

	t.Run("plain cookies", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Cookie", "foo=1; bar=2")
		rec := withContext(t, req, func(c internal.Context) error {
			v, err := c.Cookie("foo")
			require.NoError(t, err)
			assert.Equal(t, "1", v)

			_, err = c.Cookie("missing")
			assert.ErrorIs(t, err, internal.ErrCookieNotFound)

			require.NoError(t, c.RemoveCookie("bar"))
			return c.SetCookie(&http.Cookie{Name: "foo", Value: "2"})
		})
		assert.Equal(t, []string{"bar=; Max-Age=0", "foo=2"}, rec.Header().Values("Set-Cookie"))
	})

	t.Run("signed and private cookies", func(t *testing.T) {
		t.Parallel()

		key := mustKey(t)
		rec := withContext(t, httptest.NewRequest(http.MethodGet, "/", nil), func(c internal.Context) error {
			require.NoError(t, c.SetSignedCookie(key, &http.Cookie{Name: "s", Value: "sv"}))
			require.NoError(t, c.SetPrivateCookie(key, &http.Cookie{Name: "p", Value: "pv"}))

			s, err := c.SignedCookie(key, "s")
			require.NoError(t, err)
			assert.Equal(t, "sv", s)

			p, err := c.PrivateCookie(key, "p")
			require.NoError(t, err)
			assert.Equal(t, "pv", p)

			_, err = c.PrivateCookie(mustKey(t), "p")
			assert.ErrorIs(t, err, internal.ErrCookieNotFound)
			return nil
		})
		assert.Len(t, rec.Header().Values("Set-Cookie"), 2)
	})

	t.Run("nil key", func(t *testing.T) {
		t.Parallel()

		withContext(t, httptest.NewRequest(http.MethodGet, "/", nil), func(c internal.Context) error {
			assert.ErrorIs(t, c.SetSignedCookie(nil, &http.Cookie{Name: "s"}), internal.ErrNilKey)
			assert.ErrorIs(t, c.SetPrivateCookie(nil, &http.Cookie{Name: "p"}), internal.ErrNilKey)
			return nil
		})
	})

	t.Run("without manager", func(t *testing.T) {
		t.Parallel()

		app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/", func(c internal.Context) error {
				_, err := c.Cookie("foo")
				assert.ErrorIs(t, err, internal.ErrCookiesNotInstalled)
				assert.ErrorIs(t, c.SetCookie(&http.Cookie{Name: "a", Value: "1"}), internal.ErrCookiesNotInstalled)
				assert.ErrorIs(t, c.RemoveCookie("a"), internal.ErrCookiesNotInstalled)
				return nil
			})
		})))
		serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
