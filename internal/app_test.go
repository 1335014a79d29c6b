package internal_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookies/internal"
)

// routes adapts a func to internal.Handler.
type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

func serve(app *internal.App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestApp_CookieManager(t *testing.T) {
	t.Parallel()

	t.Run("installed as outermost middleware", func(t *testing.T) {
		t.Parallel()

		var order []string
		mw := func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				_, err := c.Cookies()
				order = append(order, "mw")
				require.NoError(t, err)
				return next(c)
			}
		}
		app := internal.New(
			internal.WithMiddleware(mw),
			internal.WithCookieManager(),
			internal.WithHandlers(routes(func(r internal.Router) {
				r.GET("/", func(c internal.Context) error {
					order = append(order, "handler")
					return c.SetCookie(&http.Cookie{Name: "a", Value: "1"})
				})
			})),
		)

		rec := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, []string{"mw", "handler"}, order)
		assert.Equal(t, []string{"a=1"}, rec.Header().Values("Set-Cookie"))
		assert.NotNil(t, app.CookieManager())
	})

	t.Run("disabled by default", func(t *testing.T) {
		t.Parallel()

		app := internal.New()
		assert.Nil(t, app.CookieManager())
	})

	t.Run("middleware error discards cookies", func(t *testing.T) {
		t.Parallel()

		deny := func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				_ = c.SetCookie(&http.Cookie{Name: "a", Value: "1"})
				return internal.ErrForbidden("denied")
			}
		}
		app := internal.New(
			internal.WithCookieManager(),
			internal.WithMiddleware(deny),
			internal.WithHandlers(routes(func(r internal.Router) {
				r.GET("/", func(c internal.Context) error { return nil })
			})),
		)

		rec := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, rec.Header().Values("Set-Cookie"))
	})

	t.Run("error handler response carries no cookies", func(t *testing.T) {
		t.Parallel()

		app := internal.New(
			internal.WithCookieManager(),
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				return c.JSON(http.StatusTeapot, map[string]string{"error": err.Error()})
			}),
			internal.WithHandlers(routes(func(r internal.Router) {
				r.GET("/", func(c internal.Context) error {
					_ = c.SetCookie(&http.Cookie{Name: "a", Value: "1"})
					return errors.New("boom")
				})
			})),
		)

		rec := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.JSONEq(t, `{"error":"boom"}`, rec.Body.String())
		assert.Empty(t, rec.Header().Values("Set-Cookie"))
	})

	t.Run("mounted handlers see the jar", func(t *testing.T) {
		t.Parallel()

		app := internal.New(
			internal.WithCookieManager(),
			internal.WithHandlers(routes(func(r internal.Router) {
				r.Mount("/raw", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					jar, err := internal.FromRequest(r)
					require.NoError(t, err)
					jar.Add(&http.Cookie{Name: "raw", Value: "1"})
				}))
			})),
		)

		rec := serve(app, httptest.NewRequest(http.MethodGet, "/raw", nil))
		assert.Equal(t, []string{"raw=1"}, rec.Header().Values("Set-Cookie"))
	})
}

func TestApp_Routing(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithNotFoundHandler(func(c internal.Context) error {
			return c.String(http.StatusNotFound, "custom 404")
		}),
		internal.WithMethodNotAllowedHandler(func(c internal.Context) error {
			return c.String(http.StatusMethodNotAllowed, "custom 405")
		}),
		internal.WithStaticFiles("/static/", fstest.MapFS{
			"public/app.css": {Data: []byte("body{}")},
		}, "public"),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.Route("/items", func(r internal.Router) {
				r.GET("/{id}", func(c internal.Context) error {
					return c.String(http.StatusOK, "item "+c.Param("id"))
				})
			})
			r.Group(func(r internal.Router) {
				r.Use(func(next internal.HandlerFunc) internal.HandlerFunc {
					return func(c internal.Context) error {
						c.SetHeader("X-Group", "1")
						return next(c)
					}
				})
				r.POST("/grouped", func(c internal.Context) error {
					return c.NoContent(http.StatusCreated)
				})
			})
		})),
	)

	tests := []struct {
		name   string
		method string
		path   string
		code   int
		body   string
	}{
		{"param", http.MethodGet, "/items/7", http.StatusOK, "item 7"},
		{"not found", http.MethodGet, "/missing", http.StatusNotFound, "custom 404"},
		{"method not allowed", http.MethodDelete, "/items/7", http.StatusMethodNotAllowed, "custom 405"},
		{"static file", http.MethodGet, "/static/app.css", http.StatusOK, "body{}"},
		{"group", http.MethodPost, "/grouped", http.StatusCreated, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := serve(app, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}
