package internal

// Handler declares routes on a router.
//
// Example:
//
//	type VisitHandler struct{}
//
//	func (h *VisitHandler) Routes(r cookies.Router) {
//	    r.GET("/", h.count)
//	    r.POST("/reset", h.reset)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// A non-nil error is passed to the ErrorHandler. Cookie changes made by a
// handler that fails are discarded.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc.
//
// Example:
//
//	func RequireConsent(next cookies.HandlerFunc) cookies.HandlerFunc {
//	    return func(c cookies.Context) error {
//	        if _, err := c.Cookie("consent"); err != nil {
//	            return c.Redirect(http.StatusFound, "/consent")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders errors returned from handlers.
type ErrorHandler func(Context, error) error
