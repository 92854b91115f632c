package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor used for every credential. Cost 12 keeps
// a single hash in the tens of milliseconds, which is expensive enough to make
// offline brute force impractical for the password policy we enforce.
const HashCost = 12

// ErrPasswordTooLong reports a password above bcrypt's 72-byte input limit.
var ErrPasswordTooLong = errors.New("cryptox: password exceeds 72 bytes")

// HashPassword produces a salted bcrypt hash of the plaintext. The salt is
// generated per call by the primitive; the plaintext is never stored.
func HashPassword(password string) (string, error) {
	if len(password) > 72 {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a bcrypt hash.
// The underlying comparison is constant-time.
func VerifyPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
