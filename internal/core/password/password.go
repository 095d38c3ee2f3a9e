// Package password hashes and checks admin passwords with bcrypt
package password

import (
	"errors"
	"sync"

	perr "admissions/internal/platform/errors"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor for stored hashes
const Cost = 12

// MinLength is the shortest password Hash accepts
const MinLength = 8

// ErrMismatch is returned when a password does not match its hash
var ErrMismatch = errors.New("password: mismatch")

// Hash returns the bcrypt hash of plaintext at Cost
func Hash(plaintext string) (string, error) {
	return hashCost(plaintext, Cost)
}

func hashCost(plaintext string, cost int) (string, error) {
	if len(plaintext) < MinLength {
		return "", perr.WithField(perr.Validationf("password must be at least %d characters", MinLength), "password")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeInvalidArgument, "failed to hash password")
	}
	return string(b), nil
}

// Check compares plaintext with hash
// an empty hash never matches
func Check(hash, plaintext string) error {
	if hash == "" {
		return ErrMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)); err != nil {
		return ErrMismatch
	}
	return nil
}

// decoy is a hash at Cost that no submitted password is expected to match
var decoy = sync.OnceValue(func() string {
	b, _ := bcrypt.GenerateFromPassword([]byte("decoy password for unknown accounts"), Cost)
	return string(b)
})

// Decoy returns a valid hash at Cost for sign in paths that have no stored hash
// checking against it costs the same as a real comparison
func Decoy() string { return decoy() }
