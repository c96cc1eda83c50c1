// Package security hashes passwords with bcrypt.
package security

import (
	"golang.org/x/crypto/bcrypt"

	"auth_backend/internal/feature/auth/usecase"
)

// Hasher hashes and verifies passwords using bcrypt.
type Hasher struct {
	Cost int
}

var _ usecase.PasswordHasher = (*Hasher)(nil)

// NewHasher returns a Hasher with the given bcrypt cost, clamped to the range bcrypt accepts.
// A non-positive cost selects bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{Cost: cost}
}

// Hash produces a bcrypt hash of password suitable for storage.
func (h *Hasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare returns nil if password matches hash.
func (h *Hasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
