// Package hasher hashes and verifies account passwords with bcrypt.
package hasher

import (
	"golang.org/x/crypto/bcrypt"
)

// Bcrypt hashes passwords with a fixed bcrypt cost.
type Bcrypt struct {
	cost int
}

// New creates a Bcrypt hasher. Costs outside bcrypt's accepted range fall back to bcrypt.DefaultCost.
func New(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash returns the bcrypt hash of password.
func (b *Bcrypt) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare reports whether password matches hash.
func (b *Bcrypt) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
