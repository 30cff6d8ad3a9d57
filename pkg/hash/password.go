// Package hash stores user passwords as bcrypt digests.
package hash

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is counted in characters, the same way the register
// validator counts.
const MinPasswordLength = 6

const cost = 12

var ErrTooShort = errors.New("password too short")

// Hash returns the bcrypt digest of password.
func Hash(password string) (string, error) {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return "", fmt.Errorf("%w: need at least %d characters", ErrTooShort, MinPasswordLength)
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Matches reports whether password produced digest. A malformed digest never
// matches.
func Matches(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
