package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
)

const (
	// SaltLength is the number of random bytes mixed into password hashing.
	SaltLength = 16

	// SessionKeyLength is the number of random bytes behind a session key.
	// 32 bytes = 256 bits of entropy, comfortably above the 128-bit floor
	// for unguessable bearer tokens.
	SessionKeyLength = 32
)

// RandomBytes returns n cryptographically random bytes.
func RandomBytes(n int) ([]byte, error) {
	if n <= 0 {
		n = SaltLength
	}

	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}

	return b, nil
}

// NewSessionKey generates an opaque base64url-encoded session key. The key is
// pure CSPRNG output; it is never derived from any account credential.
func NewSessionKey(byteLength int) (string, error) {
	if byteLength <= 0 {
		byteLength = SessionKeyLength
	}

	b, err := RandomBytes(byteLength)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// KeysEqual compares two session keys in constant time. Empty keys never
// match anything, including each other.
func KeysEqual(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
