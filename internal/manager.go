package internal

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/dmitrymomot/cookies/pkg/logger"
)

// jarContextKey is the request context key for the per-request Jar.
type jarContextKey struct{}

// Manager is the cookie middleware. For every request it creates a Jar over
// the request's Cookie headers and, once the handler succeeds, writes the
// jar's changes as Set-Cookie headers.
//
// Headers are appended right before the response is first written, so
// handlers that stream still emit their cookies. When the handler returns an
// error no Set-Cookie headers are sent.
type Manager struct {
	logger *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithManagerLogger sets the logger for the manager and the jars it creates.
func WithManagerLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a cookie Manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{logger: logger.NewNope()}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(logger.Component("cookies"))
	return m
}

// Middleware returns the manager as a handler middleware.
//
// Example:
//
//	app := cookies.New(
//	    cookies.WithMiddleware(cookies.NewManager().Middleware()),
//	)
func (m *Manager) Middleware() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(c Context) error {
			if _, err := FromContext(c.Context()); err == nil {
				return next(c)
			}

			jar := m.newJar(c.Request())
			c.Set(jarContextKey{}, jar)

			flush, cancel := m.hook(c.Context(), c.ResponseWriter(), jar)
			if err := next(c); err != nil {
				cancel()
				c.ResponseWriter().Fail(err)
				return err
			}
			flush()
			return nil
		}
	}
}

// Handler wraps a plain http.Handler with the cookie manager.
// A panic in next skips finalization.
//
// Example:
//
//	mux := http.NewServeMux()
//	http.ListenAndServe(":8080", cookies.NewManager().Handler(mux))
func (m *Manager) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := FromRequest(r); err == nil {
			next.ServeHTTP(w, r)
			return
		}

		jar := m.newJar(r)
		r = r.WithContext(WithJar(r.Context(), jar))
		rw, shared := w.(*ResponseWriter)
		if !shared {
			rw = NewResponseWriter(w)
		}

		flush, _ := m.hook(r.Context(), rw, jar)
		next.ServeHTTP(rw, r)
		flush()
		if !shared {
			rw.Close()
		}
	})
}

func (m *Manager) newJar(r *http.Request) *Jar {
	headers := r.Header.Values("Cookie")
	if len(headers) > 0 {
		m.logger.DebugContext(r.Context(), "cookie headers captured", logger.Count(len(headers)))
	}
	return NewJar(headers, WithJarLogger(m.logger))
}

// hook registers the finalizer on rw. flush runs it at most once; cancel
// unregisters it for failed requests.
func (m *Manager) hook(ctx context.Context, rw *ResponseWriter, jar *Jar) (flush, cancel func()) {
	flush = sync.OnceFunc(func() {
		if err := rw.Err(); err != nil {
			m.logger.DebugContext(ctx, "request failed, cookie changes discarded", logger.Error(err))
			return
		}
		m.finalize(ctx, rw.Header(), jar)
	})
	cancel = rw.OnBeforeWrite(flush)
	return flush, cancel
}

func (m *Manager) finalize(ctx context.Context, h http.Header, jar *Jar) {
	values, dropped := jar.SetCookieHeaders()
	for _, v := range values {
		h.Add("Set-Cookie", v)
	}
	for _, name := range dropped {
		m.logger.WarnContext(ctx, "invalid cookie dropped from response", logger.CookieName(name))
	}
}

// WithJar returns a copy of ctx carrying jar.
func WithJar(ctx context.Context, jar *Jar) context.Context {
	return context.WithValue(ctx, jarContextKey{}, jar)
}

// FromContext returns the Jar stored by the cookie manager.
// It returns ErrCookiesNotInstalled when the manager did not run.
func FromContext(ctx context.Context) (*Jar, error) {
	if jar, ok := ctx.Value(jarContextKey{}).(*Jar); ok && jar != nil {
		return jar, nil
	}
	return nil, ErrCookiesNotInstalled
}

// FromRequest returns the Jar for r.
func FromRequest(r *http.Request) (*Jar, error) {
	return FromContext(r.Context())
}
