package internal

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/cookies/pkg/logger"
)

// Default server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second
)

// App wires routing, middleware and the cookie manager together.
// App is immutable after creation.
type App struct {
	router                  chi.Router
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	logger                  *slog.Logger
	cookieManager           *Manager
	cookieOpts              []ManagerOption
	middlewares             []Middleware
	handlers                []Handler
	staticRoutes            []staticRoute
	cookiesEnabled          bool
}

// statusCoder is implemented by errors that choose their own HTTP status.
type statusCoder interface {
	StatusCode() int
}

type staticRoute struct {
	handler http.Handler
	pattern string
}

// New creates an application with the given options.
//
// Example:
//
//	app := cookies.New(
//	    cookies.WithCookieManager(),
//	    cookies.WithHandlers(&visitHandler{}),
//	)
func New(opts ...Option) *App {
	a := &App{
		router: chi.NewRouter(),
		logger: logger.NewNope(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.cookiesEnabled {
		a.cookieManager = NewManager(append([]ManagerOption{WithManagerLogger(a.logger)}, a.cookieOpts...)...)
	}

	a.setupRoutes()
	return a
}

// Router returns the underlying chi.Router.
func (a *App) Router() chi.Router {
	return a.router
}

// CookieManager returns the installed cookie manager, or nil.
func (a *App) CookieManager() *Manager {
	return a.cookieManager
}

// ServeHTTP implements http.Handler. The response is closed when it returns,
// so goroutines that outlive the request cannot write to it.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, ok := w.(*ResponseWriter); ok {
		a.router.ServeHTTP(w, r)
		return
	}
	rw := NewResponseWriter(w)
	defer rw.Close()
	a.router.ServeHTTP(rw, r)
}

// Run starts the HTTP server and blocks until shutdown.
//
// Example:
//
//	err := app.Run(":8080", cookies.Logger(log))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	return runServer(runtimeConfig{
		handler:         a,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

// setupRoutes installs middleware, static files and handler routes.
// The cookie manager runs outside every other middleware so it can see
// errors returned from anywhere in the chain.
func (a *App) setupRoutes() {
	if a.cookieManager != nil {
		a.router.Use(a.adaptMiddleware(a.cookieManager.Middleware()))
	}

	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	if a.notFoundHandler != nil {
		a.router.NotFound(a.wrapHandler(a.notFoundHandler))
	}
	if a.methodNotAllowedHandler != nil {
		a.router.MethodNotAllowed(a.wrapHandler(a.methodNotAllowedHandler))
	}

	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}

	r := &routerAdapter{router: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// wrapHandler converts a HandlerFunc to http.HandlerFunc.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a.logger)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// handleError marks the response as failed, renders err and closes the
// response.
func (a *App) handleError(c Context, err error) {
	rw := c.ResponseWriter()
	rw.Fail(err)
	defer rw.Close()
	if c.Written() {
		return
	}
	if a.errorHandler != nil {
		if herr := a.errorHandler(c, err); herr != nil {
			c.LogError("error handler failed", logger.Error(herr))
		}
		return
	}
	if he := AsHTTPError(err); he != nil {
		http.Error(c.Response(), he.Message, he.StatusCode())
		return
	}
	var sc statusCoder
	if errors.As(err, &sc) {
		code := sc.StatusCode()
		http.Error(c.Response(), http.StatusText(code), code)
		return
	}
	http.Error(c.Response(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
