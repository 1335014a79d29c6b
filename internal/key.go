package internal

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeyLen is the length of a master key in bytes.
	KeyLen = 64

	// MinMasterLen is the minimum secret length accepted by DeriveKey.
	MinMasterLen = 32

	signingKeyLen    = 32
	encryptionKeyLen = 32

	keyDerivationInfo = "COOKIE;SIGNED:HMAC-SHA256;PRIVATE:AEAD-AES-256-GCM"
)

var (
	// ErrKeyTooShort is returned by NewKey for input shorter than KeyLen.
	ErrKeyTooShort = errors.New("cookies: key must be at least 64 bytes")

	// ErrMasterTooShort is returned by DeriveKey for a secret shorter than MinMasterLen.
	ErrMasterTooShort = errors.New("cookies: master secret must be at least 32 bytes")

	// ErrNilKey is returned when a signed or private cookie is written without a key.
	ErrNilKey = errors.New("cookies: key is nil")
)

// Key holds the secrets for signed and private cookies.
// The first half signs, the second half encrypts.
type Key struct {
	signing    [signingKeyLen]byte
	encryption [encryptionKeyLen]byte
}

// NewKey creates a Key from the first 64 bytes of b.
func NewKey(b []byte) (*Key, error) {
	if len(b) < KeyLen {
		return nil, ErrKeyTooShort
	}
	k := &Key{}
	copy(k.signing[:], b[:signingKeyLen])
	copy(k.encryption[:], b[signingKeyLen:KeyLen])
	return k, nil
}

// DeriveKey expands a master secret into a Key using HKDF-SHA256.
//
// Example:
//
//	key, err := cookies.DeriveKey([]byte(cfg.CookieSecret))
func DeriveKey(master []byte) (*Key, error) {
	if len(master) < MinMasterLen {
		return nil, ErrMasterTooShort
	}
	buf := make([]byte, KeyLen)
	r := hkdf.New(sha256.New, master, nil, []byte(keyDerivationInfo))
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return NewKey(buf)
}

// GenerateKey creates a random Key.
func GenerateKey() (*Key, error) {
	buf := make([]byte, KeyLen)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return NewKey(buf)
}

// Signing returns a copy of the signing half.
func (k *Key) Signing() []byte {
	return append([]byte(nil), k.signing[:]...)
}

// Encryption returns a copy of the encryption half.
func (k *Key) Encryption() []byte {
	return append([]byte(nil), k.encryption[:]...)
}

// Master returns a copy of the full 64-byte key.
func (k *Key) Master() []byte {
	out := make([]byte, 0, KeyLen)
	out = append(out, k.signing[:]...)
	return append(out, k.encryption[:]...)
}
