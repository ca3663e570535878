package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters and internal/data; orchestration
// in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/aerolink/charter-ops/internal/domain/auth"
)

// TokenCodec issues and verifies signed, time-limited bearer tokens.
// Issue is a pure function of secret, claims, and clock; no server-side
// state is created.
type TokenCodec interface {
	// Issue returns a signed token embedding the user id and email with a
	// fixed validity window.
	Issue(userID, email string) (string, error)

	// Verify checks signature and expiry and returns the embedded claims.
	// Malformed, tampered, or expired tokens yield an error; Verify never
	// panics across this boundary.
	Verify(token string) (domainauth.Claims, error)
}

// PasswordHasher hashes and compares passwords with a one-way salted scheme.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when password matches the stored hash. The
	// comparison must be safe against timing side channels.
	Compare(hash, password string) error
}

// TokenDenylist records revoked token ids until their natural expiry.
// Verification consults it so logout takes effect immediately despite the
// tokens themselves being stateless.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RoleResolver loads the typed role set assigned to a user id.
// A user with no assignments (or no row at all) resolves to an empty set,
// not an error; unknown stored values are filtered out.
type RoleResolver interface {
	RolesOf(ctx context.Context, userID string) ([]domainauth.Role, error)
}
