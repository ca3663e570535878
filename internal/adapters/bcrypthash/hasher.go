// Package bcrypthash implements the password hasher port with bcrypt.
package bcrypthash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/aerolink/charter-ops/internal/ports"
)

// DefaultCost mirrors the hashing cost used by the legacy system.
const DefaultCost = 10

var _ ports.PasswordHasher = (*Hasher)(nil)

// Hasher hashes passwords with bcrypt at a fixed cost factor.
type Hasher struct {
	cost int
}

// New constructs a Hasher. Costs outside bcrypt's supported range fall back
// to DefaultCost.
func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the salted bcrypt digest of password.
func (h *Hasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Compare returns nil when password matches hash. bcrypt's comparison is
// constant-time over the digest.
func (h *Hasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
