package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/cookies/pkg/logger"
)

// Option configures the application.
type Option func(*App)

// WithCookieManager installs the cookie manager as the outermost middleware.
// Without it Context.Cookies returns ErrCookiesNotInstalled.
//
// Example:
//
//	cookies.New(
//	    cookies.WithCookieManager(),
//	)
func WithCookieManager(opts ...ManagerOption) Option {
	return func(a *App) {
		a.cookiesEnabled = true
		a.cookieOpts = append(a.cookieOpts, opts...)
	}
}

// WithMiddleware adds global middleware, applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithStaticFiles serves files from subDir of fsys under pattern.
// Directory listings are disabled.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	cookies.New(
//	    cookies.WithStaticFiles("/static/", assets, "public"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		sub, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}
		files := http.FileServerFS(sub)

		a.staticRoutes = append(a.staticRoutes, staticRoute{
			pattern: pattern,
			handler: http.StripPrefix(strings.TrimSuffix(pattern, "/"), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if strings.HasSuffix(r.URL.Path, "/") {
					http.NotFound(w, r)
					return
				}
				w.Header().Set("Cache-Control", "public, max-age=3600")
				w.Header().Set("X-Content-Type-Options", "nosniff")
				files.ServeHTTP(w, r)
			})),
		})
	}
}

// WithErrorHandler sets the handler for errors returned from handlers.
//
// Example:
//
//	cookies.WithErrorHandler(func(c cookies.Context, err error) error {
//	    if he := cookies.AsHTTPError(err); he != nil {
//	        return c.JSON(he.StatusCode(), map[string]string{"error": he.Message})
//	    }
//	    return c.String(http.StatusInternalServerError, "internal error")
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithLogger creates a JSON logger tagged with component.
// Extractors add request-scoped attributes to every record.
//
// Example:
//
//	cookies.WithLogger("web", middlewares.RequestIDExtractor())
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(logger.WithContextExtractors(extractors...)).With(logger.Component(component))
	}
}

// WithCustomLogger sets a pre-configured logger.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}
