package cookies

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/cookies/internal"
	"github.com/dmitrymomot/cookies/pkg/logger"
)

// Type aliases - public API
type (
	// Jar is the per-request cookie jar created by the Manager.
	// It is safe for concurrent use; copies of the pointer share state.
	Jar = internal.Jar

	// SignedJar signs cookie values stored in its parent Jar.
	SignedJar = internal.SignedJar

	// PrivateJar encrypts cookie values stored in its parent Jar.
	PrivateJar = internal.PrivateJar

	// Key holds the signing and encryption secrets.
	Key = internal.Key

	// Manager is the cookie middleware.
	Manager = internal.Manager

	// ManagerOption configures a Manager.
	ManagerOption = internal.ManagerOption

	// JarOption configures a Jar.
	JarOption = internal.JarOption

	// App hosts handlers behind the cookie manager.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and cookie helpers.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// ResponseWriter wraps http.ResponseWriter with write hooks.
	ResponseWriter = internal.ResponseWriter

	// HTTPError is an error carrying an HTTP status.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// Extractor tries value sources in order.
	Extractor = internal.Extractor

	// ExtractorSource reads a single value from the request.
	ExtractorSource = internal.ExtractorSource

	// Scalar lists the types the typed cookie helpers can parse.
	Scalar = internal.Scalar

	// ContextExtractor adds request-scoped attributes to log records.
	ContextExtractor = logger.ContextExtractor
)

// Errors
var (
	// ErrCookiesNotInstalled is returned when the jar is requested but the
	// cookie manager did not run. It renders as a 500.
	ErrCookiesNotInstalled = internal.ErrCookiesNotInstalled

	// ErrCookieNotFound is returned by Context cookie getters.
	ErrCookieNotFound = internal.ErrCookieNotFound

	ErrKeyTooShort    = internal.ErrKeyTooShort
	ErrMasterTooShort = internal.ErrMasterTooShort
	ErrNilKey         = internal.ErrNilKey

	// ErrResponseClosed is returned by writes made after the request finished,
	// for example by a handler that outlived its Timeout.
	ErrResponseClosed = internal.ErrResponseClosed
)

// Cookie jar

// NewJar creates a jar over raw Cookie header values.
// The Manager does this for every request; NewJar is useful in tests.
func NewJar(headers []string, opts ...JarOption) *Jar {
	return internal.NewJar(headers, opts...)
}

// WithJarLogger sets the logger used to report dropped cookie segments.
func WithJarLogger(l *slog.Logger) JarOption {
	return internal.WithJarLogger(l)
}

// FromContext returns the request's jar, or ErrCookiesNotInstalled.
func FromContext(ctx context.Context) (*Jar, error) {
	return internal.FromContext(ctx)
}

// FromRequest returns the request's jar, or ErrCookiesNotInstalled.
//
// Example:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    jar, err := cookies.FromRequest(r)
//	    if err != nil {
//	        http.Error(w, err.Error(), http.StatusInternalServerError)
//	        return
//	    }
//	    jar.Add(&http.Cookie{Name: "hello", Value: "world"})
//	}
func FromRequest(r *http.Request) (*Jar, error) {
	return internal.FromRequest(r)
}

// WithJar returns a copy of ctx carrying jar.
func WithJar(ctx context.Context, jar *Jar) context.Context {
	return internal.WithJar(ctx, jar)
}

// Keys

// NewKey creates a Key from the first 64 bytes of b.
func NewKey(b []byte) (*Key, error) {
	return internal.NewKey(b)
}

// DeriveKey expands a master secret of at least 32 bytes into a Key.
func DeriveKey(master []byte) (*Key, error) {
	return internal.DeriveKey(master)
}

// GenerateKey creates a random Key.
func GenerateKey() (*Key, error) {
	return internal.GenerateKey()
}

// Manager

// NewManager creates the cookie middleware.
func NewManager(opts ...ManagerOption) *Manager {
	return internal.NewManager(opts...)
}

// WithManagerLogger sets the manager logger.
func WithManagerLogger(l *slog.Logger) ManagerOption {
	return internal.WithManagerLogger(l)
}

// Layer returns the cookie manager as a Middleware.
//
// Example:
//
//	r.Group(func(r cookies.Router) {
//	    r.Use(cookies.Layer())
//	    r.GET("/", visits)
//	})
func Layer(opts ...ManagerOption) Middleware {
	return internal.NewManager(opts...).Middleware()
}

// Handler wraps a plain http.Handler with the cookie manager.
//
// Example:
//
//	http.ListenAndServe(":8080", cookies.Handler(mux))
func Handler(next http.Handler, opts ...ManagerOption) http.Handler {
	return internal.NewManager(opts...).Handler(next)
}

// Application

// New creates an application with the given options.
//
// Example:
//
//	app := cookies.New(
//	    cookies.WithCookieManager(),
//	    cookies.WithHandlers(&visitHandler{}),
//	)
//	err := app.Run(":8080", cookies.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// WithCookieManager installs the cookie manager as the outermost middleware.
func WithCookieManager(opts ...ManagerOption) Option {
	return internal.WithCookieManager(opts...)
}

// WithMiddleware adds global middleware in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithStaticFiles serves files from subDir of fsys under pattern.
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler sets the handler for errors returned from handlers.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithLogger creates a JSON logger tagged with component.
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a pre-configured logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// Runtime

// Logger sets the server logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout bounds graceful shutdown. Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function that must succeed before serving.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function run after the server stops.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context; cancelling it stops the server.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Errors

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnauthorized(message, opts...)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrForbidden(message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

func WithTitle(title string) HTTPErrorOption { return internal.WithTitle(title) }

func WithDetail(detail string) HTTPErrorOption { return internal.WithDetail(detail) }

func WithErrorCode(code string) HTTPErrorOption { return internal.WithErrorCode(code) }

func WithRequestID(id string) HTTPErrorOption { return internal.WithRequestID(id) }

func WithError(err error) HTTPErrorOption { return internal.WithError(err) }

// IsHTTPError reports whether err wraps an HTTPError.
func IsHTTPError(err error) bool {
	return internal.IsHTTPError(err)
}

// AsHTTPError extracts the HTTPError from err, or returns nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// Extractors

// NewExtractor creates an Extractor over sources.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return internal.NewExtractor(sources...)
}

func FromHeader(name string) ExtractorSource { return internal.FromHeader(name) }

func FromQuery(name string) ExtractorSource { return internal.FromQuery(name) }

func FromParam(name string) ExtractorSource { return internal.FromParam(name) }

func FromForm(name string) ExtractorSource { return internal.FromForm(name) }

func FromBearerToken() ExtractorSource { return internal.FromBearerToken() }

func FromCookie(name string) ExtractorSource { return internal.FromCookie(name) }

func FromSignedCookie(key *Key, name string) ExtractorSource {
	return internal.FromSignedCookie(key, name)
}

func FromPrivateCookie(key *Key, name string) ExtractorSource {
	return internal.FromPrivateCookie(key, name)
}

// Typed helpers

// ContextValue returns the request context value for key as T.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Param returns a URL parameter parsed as T.
func Param[T Scalar](c Context, name string) T {
	return internal.Param[T](c, name)
}

// QueryDefault returns a query parameter parsed as T, or def.
func QueryDefault[T Scalar](c Context, name string, def T) T {
	return internal.QueryDefault(c, name, def)
}

// CookieValue returns a plain cookie parsed as T, or def.
//
// Example:
//
//	visits := cookies.CookieValue(c, "visits", 0)
func CookieValue[T Scalar](c Context, name string, def T) T {
	return internal.CookieValue(c, name, def)
}

// SignedCookieValue returns a signed cookie parsed as T, or def.
func SignedCookieValue[T Scalar](c Context, key *Key, name string, def T) T {
	return internal.SignedCookieValue(c, key, name, def)
}

// PrivateCookieValue returns a private cookie parsed as T, or def.
func PrivateCookieValue[T Scalar](c Context, key *Key, name string, def T) T {
	return internal.PrivateCookieValue(c, key, name, def)
}
