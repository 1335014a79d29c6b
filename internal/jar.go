package internal

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dmitrymomot/cookies/pkg/logger"
)

// Jar is a per-request cookie jar shared between handlers and the cookie manager.
// The request's Cookie headers are parsed on first access. Mutations are tracked
// and emitted as Set-Cookie headers when the response is finalized.
//
// A *Jar is safe for concurrent use. Copying the pointer shares the same jar.
type Jar struct {
	logger   *slog.Logger
	index    map[string]int
	headers  []string
	original []*http.Cookie
	delta    []deltaEntry
	mu       sync.Mutex
	parsed   bool
	changed  bool
}

// deltaEntry is a cookie added or removed during the current request.
type deltaEntry struct {
	cookie  *http.Cookie
	removal bool
}

// JarOption configures a Jar.
type JarOption func(*Jar)

// WithJarLogger sets the logger used to report dropped cookie segments.
func WithJarLogger(l *slog.Logger) JarOption {
	return func(j *Jar) {
		if l != nil {
			j.logger = l
		}
	}
}

// NewJar creates a jar over raw Cookie header values.
// Nothing is parsed until the first read or write.
func NewJar(headers []string, opts ...JarOption) *Jar {
	j := &Jar{
		headers: append([]string(nil), headers...),
		logger:  logger.NewNope(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Add inserts or replaces the cookie with the same name.
func (j *Jar) Add(c *http.Cookie) {
	if c == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	j.ensureParsed()
	j.changed = true
	j.setDelta(deltaEntry{cookie: cloneCookie(c)})
}

// Get returns a copy of the named cookie, or nil if it is absent or removed.
// Reading never marks the jar as changed.
func (j *Jar) Get(name string) *http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.ensureParsed()
	if c := j.lookup(name); c != nil {
		return cloneCookie(c)
	}
	return nil
}

// Remove deletes the cookie from the jar. The cookie's Domain and Path are
// used for the removal marker sent to the client.
func (j *Jar) Remove(c *http.Cookie) {
	if c == nil {
		return
	}
	j.remove(removal{cookie: c})
}

// RemoveByName deletes the named cookie using the Domain and Path of the
// cookie received with the request. If the request did not carry the cookie
// no removal marker is emitted.
func (j *Jar) RemoveByName(name string) {
	j.remove(removal{name: name})
}

// List returns copies of all current cookies in first-seen order.
func (j *Jar) List() []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.ensureParsed()
	out := make([]*http.Cookie, 0, len(j.original)+len(j.delta))
	seen := make(map[string]struct{}, len(j.original)+len(j.delta))
	for _, c := range j.original {
		seen[c.Name] = struct{}{}
		if cur := j.lookup(c.Name); cur != nil {
			out = append(out, cloneCookie(cur))
		}
	}
	for _, e := range j.delta {
		if _, ok := seen[e.cookie.Name]; ok || e.removal {
			continue
		}
		out = append(out, cloneCookie(e.cookie))
	}
	return out
}

// Changed reports whether Add or Remove was called on the jar.
func (j *Jar) Changed() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.changed
}

// Delta returns copies of the cookies added or removed during this request,
// including removal markers.
func (j *Jar) Delta() []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.deltaCookies()
}

// SetCookieHeaders serializes the delta into Set-Cookie header values.
// It returns nothing when the jar was not changed. Entries that do not
// serialize to a valid header value are skipped and reported via dropped.
func (j *Jar) SetCookieHeaders() (values []string, dropped []string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.changed {
		return nil, nil
	}
	for _, c := range j.deltaCookies() {
		if err := c.Valid(); err != nil {
			dropped = append(dropped, c.Name)
			continue
		}
		v := c.String()
		if v == "" {
			dropped = append(dropped, c.Name)
			continue
		}
		values = append(values, v)
	}
	return values, dropped
}

// Signed returns a view that signs values with key.
func (j *Jar) Signed(key *Key) *SignedJar {
	return &SignedJar{jar: j, key: key}
}

// Private returns a view that encrypts values with key.
func (j *Jar) Private(key *Key) *PrivateJar {
	return &PrivateJar{jar: j, key: key}
}

// removal is either a full cookie or a bare name.
type removal struct {
	cookie *http.Cookie
	name   string
}

func (r removal) cookieName() string {
	if r.cookie != nil {
		return r.cookie.Name
	}
	return r.name
}

func (j *Jar) remove(r removal) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.ensureParsed()
	j.changed = true

	name := r.cookieName()
	j.dropDelta(name)

	orig := j.originalCookie(name)
	if orig == nil {
		return
	}

	src := r.cookie
	if src == nil {
		src = orig
	}
	j.setDelta(deltaEntry{
		cookie: &http.Cookie{
			Name:   name,
			Domain: src.Domain,
			Path:   src.Path,
			MaxAge: -1,
		},
		removal: true,
	})
}

// ensureParsed populates the original set from raw headers once.
// Callers must hold j.mu.
func (j *Jar) ensureParsed() {
	if j.parsed {
		return
	}
	j.parsed = true
	j.index = make(map[string]int)

	for _, h := range j.headers {
		if !utf8.ValidString(h) {
			j.logger.Debug("cookie header is not valid utf-8, ignored")
			continue
		}
		for segment := range strings.SplitSeq(h, ";") {
			segment = strings.TrimSpace(segment)
			if segment == "" {
				continue
			}
			c, ok := parseEncoded(segment)
			if !ok {
				j.logger.Debug("malformed cookie segment dropped", slog.Int("length", len(segment)))
				continue
			}
			j.addOriginal(c)
		}
	}
}

func (j *Jar) addOriginal(c *http.Cookie) {
	if i, ok := j.index[c.Name]; ok {
		j.original[i] = c
		return
	}
	j.index[c.Name] = len(j.original)
	j.original = append(j.original, c)
}

func (j *Jar) originalCookie(name string) *http.Cookie {
	if i, ok := j.index[name]; ok {
		return j.original[i]
	}
	return nil
}

// lookup returns the current cookie without copying it.
func (j *Jar) lookup(name string) *http.Cookie {
	for _, e := range j.delta {
		if e.cookie.Name == name {
			if e.removal {
				return nil
			}
			return e.cookie
		}
	}
	return j.originalCookie(name)
}

func (j *Jar) setDelta(e deltaEntry) {
	for i := range j.delta {
		if j.delta[i].cookie.Name == e.cookie.Name {
			j.delta[i] = e
			return
		}
	}
	j.delta = append(j.delta, e)
}

func (j *Jar) dropDelta(name string) {
	for i := range j.delta {
		if j.delta[i].cookie.Name == name {
			j.delta = append(j.delta[:i], j.delta[i+1:]...)
			return
		}
	}
}

func (j *Jar) deltaCookies() []*http.Cookie {
	out := make([]*http.Cookie, 0, len(j.delta))
	for _, e := range j.delta {
		out = append(out, cloneCookie(e.cookie))
	}
	return out
}

// parseEncoded parses a single "name=value" pair and percent-decodes both parts.
func parseEncoded(segment string) (*http.Cookie, bool) {
	if !strings.Contains(segment, "=") {
		return nil, false
	}
	parsed, err := http.ParseCookie(segment)
	if err != nil || len(parsed) != 1 {
		return nil, false
	}
	c := parsed[0]

	name := decodePercent(c.Name)
	if name == "" {
		return nil, false
	}
	return &http.Cookie{Name: name, Value: decodePercent(c.Value), Quoted: c.Quoted}, true
}

// decodePercent decodes valid %XX sequences and keeps any other '%' literally,
// so values such as "100%" written by Add read back unchanged.
func decodePercent(s string) string {
	i := strings.IndexByte(s, '%')
	if i < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:i])
	for ; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	default:
		return c - '0'
	}
}

func cloneCookie(c *http.Cookie) *http.Cookie {
	cp := *c
	if c.Unparsed != nil {
		cp.Unparsed = append([]string(nil), c.Unparsed...)
	}
	return &cp
}
