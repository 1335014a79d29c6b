package internal

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"github.com/dmitrymomot/cookies/pkg/logger"
)

// PrivateJar is a view over a Jar that encrypts cookie values with AES-256-GCM.
// The cookie name is bound as additional data, so a value cannot be moved to
// another cookie.
type PrivateJar struct {
	jar *Jar
	key *Key
}

// Add encrypts the cookie value and stores it in the parent jar.
// Without a key, or if the cipher cannot be initialized, the cookie is
// dropped and the failure is logged.
func (p *PrivateJar) Add(c *http.Cookie) {
	if c == nil {
		return
	}
	cp := cloneCookie(c)
	sealed, err := seal(p.key, cp.Name, cp.Value)
	if err != nil {
		p.jar.logger.Error("encrypt cookie", logger.CookieName(cp.Name), logger.Error(err))
		return
	}
	cp.Value = sealed
	p.jar.Add(cp)
}

// Get returns the decrypted cookie, or nil when the cookie is missing,
// was tampered with, or was encrypted with another key.
func (p *PrivateJar) Get(name string) *http.Cookie {
	c := p.jar.Get(name)
	if c == nil {
		return nil
	}
	value, ok := unseal(p.key, c.Name, c.Value)
	if !ok {
		return nil
	}
	c.Value = value
	return c
}

// Remove forwards to the parent jar.
func (p *PrivateJar) Remove(c *http.Cookie) {
	p.jar.Remove(c)
}

// RemoveByName forwards to the parent jar.
func (p *PrivateJar) RemoveByName(name string) {
	p.jar.RemoveByName(name)
}

func newGCM(key *Key) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key.encryption[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func seal(key *Key, name, value string) (string, error) {
	if key == nil {
		return "", ErrNilKey
	}
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	out := gcm.Seal(nonce, nonce, []byte(value), []byte(name))
	return base64.StdEncoding.EncodeToString(out), nil
}

func unseal(key *Key, name, sealed string) (string, bool) {
	if key == nil {
		return "", false
	}
	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", false
	}
	gcm, err := newGCM(key)
	if err != nil {
		return "", false
	}
	if len(data) < gcm.NonceSize()+gcm.Overhead() {
		return "", false
	}
	nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, ciphertext, []byte(name))
	if err != nil {
		return "", false
	}
	return string(plain), true
}
