package auth

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize = 16
	keySize  = 20

	// DefaultPasswordHashIterations is the PBKDF2 cost stored hashes were
	// created with. It is low by current standards and is configurable.
	DefaultPasswordHashIterations = 1000
)

// ErrMalformedPasswordHash is returned by Verify for a stored value that is
// not base64 or does not hold exactly salt plus key.
var ErrMalformedPasswordHash = errors.New("malformed password hash")

// PasswordHasher derives PBKDF2-HMAC-SHA1 keys and encodes them as
// base64(salt ‖ key), a 36-byte blob.
type PasswordHasher struct {
	iterations int
	rand       io.Reader
}

// NewPasswordHasher returns a hasher using the given iteration count;
// values below 1 fall back to DefaultPasswordHashIterations.
func NewPasswordHasher(iterations int) *PasswordHasher {
	if iterations < 1 {
		iterations = DefaultPasswordHashIterations
	}
	return &PasswordHasher{iterations: iterations, rand: rand.Reader}
}

// Hash salts and derives password, returning the encoded blob.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(h.rand, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	blob := make([]byte, 0, saltSize+keySize)
	blob = append(blob, salt...)
	blob = append(blob, h.derive(password, salt)...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Verify re-derives the key with the salt stored in encoded and compares it in
// constant time. A false result with a nil error means a wrong password.
func (h *PasswordHasher) Verify(password, encoded string) (bool, error) {
	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedPasswordHash, err)
	}
	if len(blob) != saltSize+keySize {
		return false, fmt.Errorf("%w: want %d bytes, got %d", ErrMalformedPasswordHash, saltSize+keySize, len(blob))
	}

	salt, want := blob[:saltSize], blob[saltSize:]
	got := h.derive(password, salt)

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func (h *PasswordHasher) derive(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, h.iterations, keySize, sha1.New)
}
