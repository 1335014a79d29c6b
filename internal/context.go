package internal

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// ErrCookieNotFound is returned by the Context cookie helpers when the
// cookie is absent or fails verification.
var ErrCookieNotFound = errors.New("cookies: cookie not found")

// Context provides request/response access to handlers.
// It implements context.Context by delegating to the request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the response writer.
	Response() http.ResponseWriter

	// ResponseWriter returns the wrapped writer for registering write hooks.
	ResponseWriter() *ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Param returns the URL parameter by name.
	Param(name string) string

	// Query returns the query parameter by name.
	Query(name string) string

	// QueryDefault returns the query parameter or a default value.
	QueryDefault(name, defaultValue string) string

	// Form returns the form value by name.
	Form(name string) string

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// JSON writes a JSON response with the given status code.
	JSON(code int, v any) error

	// String writes a plain text response with the given status code.
	String(code int, s string) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Redirect sends a redirect response.
	Redirect(code int, url string) error

	// Error creates an HTTPError with the given status code and message.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Written reports whether the response headers were sent.
	Written() bool

	// Logger returns the request logger.
	Logger() *slog.Logger

	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key, value any)

	// Get retrieves a value from the request context.
	Get(key any) any

	// Cookies returns the request's cookie jar.
	// It returns ErrCookiesNotInstalled when no cookie manager is configured.
	Cookies() (*Jar, error)

	// Cookie returns the value of a plain cookie.
	Cookie(name string) (string, error)

	// SetCookie adds or replaces a cookie.
	SetCookie(c *http.Cookie) error

	// RemoveCookie removes a cookie by name.
	RemoveCookie(name string) error

	// SignedCookie returns the verified value of a signed cookie.
	SignedCookie(key *Key, name string) (string, error)

	// SetSignedCookie signs and stores a cookie.
	SetSignedCookie(key *Key, c *http.Cookie) error

	// PrivateCookie returns the decrypted value of a private cookie.
	PrivateCookie(key *Key, name string) (string, error)

	// SetPrivateCookie encrypts and stores a cookie.
	SetPrivateCookie(key *Key, c *http.Cookie) error
}

type requestContext struct {
	request        *http.Request
	responseWriter *ResponseWriter
	logger         *slog.Logger
}

func newContext(w http.ResponseWriter, r *http.Request, l *slog.Logger) *requestContext {
	return &requestContext{
		request:        r,
		responseWriter: NewResponseWriter(w),
		logger:         l,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.responseWriter
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.responseWriter
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	if v := c.request.URL.Query().Get(name); v != "" {
		return v
	}
	return defaultValue
}

func (c *requestContext) Form(name string) string {
	return c.request.FormValue(name)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.responseWriter.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	c.responseWriter.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	return json.NewEncoder(c.responseWriter).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.responseWriter.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	_, err := c.responseWriter.Write([]byte(s))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.responseWriter.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.responseWriter, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Cookies() (*Jar, error) {
	return FromContext(c.request.Context())
}

func (c *requestContext) Cookie(name string) (string, error) {
	jar, err := c.Cookies()
	if err != nil {
		return "", err
	}
	return cookieValue(jar.Get(name))
}

func (c *requestContext) SetCookie(ck *http.Cookie) error {
	jar, err := c.Cookies()
	if err != nil {
		return err
	}
	jar.Add(ck)
	return nil
}

func (c *requestContext) RemoveCookie(name string) error {
	jar, err := c.Cookies()
	if err != nil {
		return err
	}
	jar.RemoveByName(name)
	return nil
}

func (c *requestContext) SignedCookie(key *Key, name string) (string, error) {
	jar, err := c.Cookies()
	if err != nil {
		return "", err
	}
	return cookieValue(jar.Signed(key).Get(name))
}

func (c *requestContext) SetSignedCookie(key *Key, ck *http.Cookie) error {
	if key == nil {
		return ErrNilKey
	}
	jar, err := c.Cookies()
	if err != nil {
		return err
	}
	jar.Signed(key).Add(ck)
	return nil
}

func (c *requestContext) PrivateCookie(key *Key, name string) (string, error) {
	jar, err := c.Cookies()
	if err != nil {
		return "", err
	}
	return cookieValue(jar.Private(key).Get(name))
}

func (c *requestContext) SetPrivateCookie(key *Key, ck *http.Cookie) error {
	if key == nil {
		return ErrNilKey
	}
	jar, err := c.Cookies()
	if err != nil {
		return err
	}
	jar.Private(key).Add(ck)
	return nil
}

func cookieValue(c *http.Cookie) (string, error) {
	if c == nil {
		return "", ErrCookieNotFound
	}
	return c.Value, nil
}
