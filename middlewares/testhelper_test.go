package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrymomot/cookies"
)

// routes adapts a func to cookies.Handler.
type routes func(r cookies.Router)

func (f routes) Routes(r cookies.Router) { f(r) }

// serve builds an app with the cookie manager, mw and a single GET / route.
func serve(t *testing.T, req *http.Request, h cookies.HandlerFunc, mw ...cookies.Middleware) *httptest.ResponseRecorder {
	t.Helper()

	app := cookies.New(
		cookies.WithCookieManager(),
		cookies.WithMiddleware(mw...),
		cookies.WithHandlers(routes(func(r cookies.Router) {
			r.GET("/", h)
		})),
	)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}
