// Package middlewares provides request-scoped middleware that composes with
// the cookie manager.
//
// Every middleware here runs inside the manager when installed through
// cookies.WithMiddleware, so an error it returns also discards the request's
// cookie changes.
//
// # Request ID
//
// RequestID assigns an ID to each request. It reuses an ID from the
// X-Request-ID or X-Correlation-ID headers, or any extra source, and
// otherwise generates a UUID:
//
//	app := cookies.New(
//	    cookies.WithLogger("web", middlewares.RequestIDExtractor()),
//	    cookies.WithCookieManager(),
//	    cookies.WithMiddleware(
//	        middlewares.RequestID(middlewares.WithRequestIDSources(cookies.FromCookie("rid"))),
//	    ),
//	)
//
// # Recover
//
// Recover turns panics into *PanicError values for the ErrorHandler:
//
//	cookies.WithErrorHandler(func(c cookies.Context, err error) error {
//	    if pe, ok := middlewares.AsPanicError(err); ok {
//	        c.LogError("panic", "value", pe.Value)
//	    }
//	    return c.String(http.StatusInternalServerError, "internal error")
//	})
//
// # Timeout
//
// Timeout returns *TimeoutError when a handler runs too long. Handlers that
// do blocking work should watch GetTimeoutContext:
//
//	func slow(c cookies.Context) error {
//	    ctx := middlewares.GetTimeoutContext(c)
//	    select {
//	    case <-ctx.Done():
//	        return ctx.Err()
//	    case res := <-work():
//	        return c.JSON(http.StatusOK, res)
//	    }
//	}
package middlewares
