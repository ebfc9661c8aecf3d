// Package auth holds credential checking and session handling for the photo API.
package auth

import (
	"crypto/subtle"
	"fmt"

	"photoshare/internal/config"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes new passwords and checks candidates against stored values.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(stored, candidate string) bool
}

// NewPasswordHasher returns the hasher for scheme (plain or bcrypt).
func NewPasswordHasher(scheme string) (PasswordHasher, error) {
	switch scheme {
	case "", config.PasswordPlain:
		return plainHasher{}, nil
	case config.PasswordBcrypt:
		return bcryptHasher{cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unsupported password scheme %q", scheme)
	}
}

// plainHasher stores passwords as given, matching the legacy fixture data.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return password, nil
}

func (plainHasher) Compare(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

type bcryptHasher struct {
	cost int
}

func (h bcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

func (h bcryptHasher) Compare(stored, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
}
