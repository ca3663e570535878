// Package jwtcodec implements the session token codec as an HS256-signed JWT.
// Tokens are stateless: validity is a pure function of the signing secret,
// the embedded claims, and the clock.
package jwtcodec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainauth "github.com/aerolink/charter-ops/internal/domain/auth"
	"github.com/aerolink/charter-ops/internal/ports"
)

// DefaultTTL is the token validity window used when none is configured.
const DefaultTTL = 7 * 24 * time.Hour

// ErrInvalidToken covers malformed, tampered, and expired tokens uniformly
// so callers cannot distinguish the failure mode.
var ErrInvalidToken = errors.New("invalid or expired token")

var _ ports.TokenCodec = (*Codec)(nil)

// tokenClaims is the JWT payload. The user id rides in the registered
// Subject claim; email is a private claim.
type tokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Codec issues and verifies HS256 tokens with a fixed validity window.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Options groups constructor parameters for Codec.
type Options struct {
	// Secret is the process-wide signing secret. Required.
	Secret string
	// TTL is the validity window; DefaultTTL when zero.
	TTL time.Duration
	// Now overrides the clock in tests.
	Now func() time.Time
}

// New constructs a Codec. An empty secret is a programming error surfaced at
// startup, never per request.
func New(opts Options) (*Codec, error) {
	if opts.Secret == "" {
		return nil, errors.New("token signing secret is required")
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Codec{secret: []byte(opts.Secret), ttl: ttl, now: now}, nil
}

// Issue returns a signed token for the given identity.
func (c *Codec) Issue(userID, email string) (string, error) {
	issuedAt := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.ttl)),
		},
		Email: email,
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded claims.
// All failure modes collapse into ErrInvalidToken.
func (c *Codec) Verify(token string) (domainauth.Claims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid {
		return domainauth.Claims{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return domainauth.Claims{}, ErrInvalidToken
	}

	out := domainauth.Claims{
		UserID:  claims.Subject,
		Email:   claims.Email,
		TokenID: claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}

// TTL returns the configured validity window. The denylist uses it to bound
// how long a revoked token id must be remembered.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}
