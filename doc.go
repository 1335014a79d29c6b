// Package cookies provides a per-request cookie jar for net/http servers.
//
// The cookie manager parses the request's Cookie headers on first use,
// tracks every change a handler makes and, when the handler succeeds, sends
// exactly those changes as Set-Cookie headers. Reads never produce headers.
//
// # Quick Start
//
//	app := cookies.New(
//	    cookies.WithCookieManager(),
//	    cookies.WithHandlers(&visitHandler{}),
//	)
//
//	func (h *visitHandler) visit(c cookies.Context) error {
//	    n := cookies.CookieValue(c, "visits", 0)
//	    if err := c.SetCookie(&http.Cookie{Name: "visits", Value: strconv.Itoa(n + 1)}); err != nil {
//	        return err
//	    }
//	    return c.String(http.StatusOK, strconv.Itoa(n))
//	}
//
// Plain net/http code wraps a handler instead:
//
//	http.ListenAndServe(":8080", cookies.Handler(mux))
//
// and reads the jar with FromRequest.
//
// # Signed and Private Cookies
//
// A Key holds a signing half and an encryption half. Derive one from a
// secret of at least 32 bytes:
//
//	key, err := cookies.DeriveKey([]byte(os.Getenv("COOKIE_SECRET")))
//
//	jar.Signed(key).Add(&http.Cookie{Name: "theme", Value: "dark"})
//	jar.Private(key).Add(&http.Cookie{Name: "uid", Value: "42"})
//
// Signed values can be read but not forged by the client. Private values are
// encrypted. A value that fails verification reads as absent.
//
// # Failed Requests
//
// When a handler or middleware returns an error, the jar's changes are
// discarded and the error response carries no Set-Cookie headers.
//
// # Configuration
//
// Config reads HTTP_ADDR, COOKIE_SECRET, LOG_LEVEL, LOG_FORMAT, the Sentry
// settings and SHUTDOWN_TIMEOUT from the environment and an optional .env
// file.
package cookies
