package internal

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"

	"github.com/dmitrymomot/cookies/pkg/logger"
)

// signatureLen is the length of a base64 encoded HMAC-SHA256 tag.
var signatureLen = base64.StdEncoding.EncodedLen(sha256.Size)

// SignedJar is a view over a Jar that signs cookie values.
// Values stay readable by the client but cannot be modified without the key.
type SignedJar struct {
	jar *Jar
	key *Key
}

// Add signs the cookie value and stores it in the parent jar.
// Without a key the cookie is dropped and the failure is logged.
func (s *SignedJar) Add(c *http.Cookie) {
	if c == nil {
		return
	}
	if s.key == nil {
		s.jar.logger.Error("sign cookie", logger.CookieName(c.Name), logger.Error(ErrNilKey))
		return
	}
	cp := cloneCookie(c)
	cp.Value = sign(s.key, cp.Name, cp.Value)
	s.jar.Add(cp)
}

// Get returns the verified cookie, or nil when the cookie is missing
// or its signature does not match.
func (s *SignedJar) Get(name string) *http.Cookie {
	c := s.jar.Get(name)
	if c == nil {
		return nil
	}
	value, ok := verify(s.key, c.Name, c.Value)
	if !ok {
		return nil
	}
	c.Value = value
	return c
}

// Remove forwards to the parent jar.
func (s *SignedJar) Remove(c *http.Cookie) {
	s.jar.Remove(c)
}

// RemoveByName forwards to the parent jar.
func (s *SignedJar) RemoveByName(name string) {
	s.jar.RemoveByName(name)
}

func sign(key *Key, name, value string) string {
	return base64.StdEncoding.EncodeToString(mac(key, name, value)) + value
}

func verify(key *Key, name, signed string) (string, bool) {
	if key == nil || len(signed) < signatureLen {
		return "", false
	}
	tag, err := base64.StdEncoding.DecodeString(signed[:signatureLen])
	if err != nil {
		return "", false
	}
	value := signed[signatureLen:]
	if !hmac.Equal(tag, mac(key, name, value)) {
		return "", false
	}
	return value, true
}

func mac(key *Key, name, value string) []byte {
	h := hmac.New(sha256.New, key.signing[:])
	h.Write([]byte(name))
	h.Write([]byte(value))
	return h.Sum(nil)
}
