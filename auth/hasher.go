package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes      = 16
	hashIterations = 100_000
	hashKeyLength  = 64
)

// GenerateSalt returns a fresh random salt, hex-encoded (32 characters).
// A new salt is generated for every credential-set operation; the old one
// is discarded on password change.
func GenerateSalt() (string, error) {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashPassword derives a storable hash from a plaintext password and salt
// using PBKDF2-SHA512. Deterministic: the same (password, salt) pair always
// yields the same hex output.
func HashPassword(password, salt string) (string, error) {
	if password == "" || salt == "" {
		return "", ErrInvalidInput
	}
	key := pbkdf2.Key([]byte(password), []byte(salt), hashIterations, hashKeyLength, sha512.New)
	return hex.EncodeToString(key), nil
}
