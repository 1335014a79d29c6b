package internal

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"sync"
)

// ErrResponseClosed is returned by Write after the response was closed.
var ErrResponseClosed = errors.New("cookies: response already completed")

// ResponseWriter wraps http.ResponseWriter to track the response status and
// run hooks right before headers are sent.
//
// Writes are serialized, so a handler goroutine that outlives its request
// cannot interleave with the error response. After Close every write is
// discarded.
type ResponseWriter struct {
	http.ResponseWriter
	err     error
	hooks   []writeHook
	status  int
	size    int64
	nextID  int
	wmu     sync.Mutex // serializes writes to the underlying writer; taken before mu
	mu      sync.Mutex
	written bool
	closed  bool
}

type writeHook struct {
	fn func()
	id int
}

// NewResponseWriter wraps w. An existing *ResponseWriter is returned as is,
// so hooks registered by outer middleware are shared with inner handlers.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return &ResponseWriter{
		ResponseWriter: w,
		status:         http.StatusOK,
	}
}

// OnBeforeWrite registers fn to run once, before the first WriteHeader or Write.
// Hooks run in registration order and must not write to the response.
// The returned func unregisters the hook if it has not run yet.
func (w *ResponseWriter) OnBeforeWrite(fn func()) (cancel func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.nextID++
	id := w.nextID
	w.hooks = append(w.hooks, writeHook{id: id, fn: fn})

	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		for i, h := range w.hooks {
			if h.id == id {
				w.hooks = append(w.hooks[:i], w.hooks[i+1:]...)
				return
			}
		}
	}
}

// begin marks the response as written and returns pending hooks with the
// status to send. It returns false if the response was already written.
func (w *ResponseWriter) begin(code int) ([]writeHook, int, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.written {
		return nil, 0, false
	}
	w.written = true
	if code != 0 {
		w.status = code
	}
	hooks := w.hooks
	w.hooks = nil
	return hooks, w.status, true
}

// writeHeader runs pending hooks and sends the status. Callers hold wmu.
func (w *ResponseWriter) writeHeader(code int) {
	hooks, status, ok := w.begin(code)
	if !ok {
		return
	}
	for _, h := range hooks {
		h.fn()
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *ResponseWriter) isClosed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// Header returns the response headers. After Close it returns a detached
// map, so late changes never reach the client.
func (w *ResponseWriter) Header() http.Header {
	if w.isClosed() {
		return http.Header{}
	}
	return w.ResponseWriter.Header()
}

// WriteHeader runs pending hooks and sends the status code.
// Subsequent calls and calls after Close are ignored.
func (w *ResponseWriter) WriteHeader(code int) {
	w.wmu.Lock()
	defer w.wmu.Unlock()

	if w.isClosed() {
		return
	}
	w.writeHeader(code)
}

// Write sends an implicit 200 status on first use and writes b.
// After Close it writes nothing and returns ErrResponseClosed.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	w.wmu.Lock()
	defer w.wmu.Unlock()

	if w.isClosed() {
		return 0, ErrResponseClosed
	}
	w.writeHeader(0)

	n, err := w.ResponseWriter.Write(b)
	w.mu.Lock()
	w.size += int64(n)
	w.mu.Unlock()
	return n, err
}

// Close marks the response as complete. It waits for an in-flight write,
// drops pending hooks and turns later writes into no-ops.
func (w *ResponseWriter) Close() {
	w.wmu.Lock()
	defer w.wmu.Unlock()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	w.hooks = nil
}

// Fail records that the request failed with err. Hooks can check Err to
// skip work that only applies to successful responses.
func (w *ResponseWriter) Fail(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err == nil {
		w.err = err
	}
}

// Err returns the error recorded by Fail.
func (w *ResponseWriter) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Status returns the response status code.
func (w *ResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Size returns the number of body bytes written.
func (w *ResponseWriter) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Written reports whether headers have been sent.
func (w *ResponseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Flush implements http.Flusher.
func (w *ResponseWriter) Flush() {
	w.wmu.Lock()
	defer w.wmu.Unlock()

	if w.isClosed() {
		return
	}
	w.writeHeader(http.StatusOK)
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack implements http.Hijacker.
func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if w.isClosed() {
		return nil, nil, ErrResponseClosed
	}
	if h, ok := w.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// Push implements http.Pusher.
func (w *ResponseWriter) Push(target string, opts *http.PushOptions) error {
	if p, ok := w.ResponseWriter.(http.Pusher); ok {
		return p.Push(target, opts)
	}
	return http.ErrNotSupported
}

// Unwrap returns the underlying writer for http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
