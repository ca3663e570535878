package httpx

import (
	"context"

	domainauth "github.com/aerolink/charter-ops/internal/domain/auth"
	"github.com/aerolink/charter-ops/internal/domain/model"
)

// Principal is the authenticated identity attached to a request after the
// authorization middleware runs: the freshly loaded user, the verified
// token claims, and the roles resolved for this request.
type Principal struct {
	User   *model.User
	Claims domainauth.Claims
	Roles  []domainauth.Role
}

// principalKey is an unexported context key type to avoid collisions across
// packages. Centralized in this file so all handlers/middleware use the
// same key.
type principalKey struct{}

// SetPrincipalInContext returns a child context that carries the principal.
// If p is nil, the original ctx is returned unchanged.
func SetPrincipalInContext(ctx context.Context, p *Principal) context.Context {
	if p == nil {
		return ctx
	}
	return context.WithValue(ctx, principalKey{}, p)
}

// GetPrincipalFromContext returns the principal from context and a boolean
// indicating presence.
func GetPrincipalFromContext(ctx context.Context) (*Principal, bool) {
	if p, ok := ctx.Value(principalKey{}).(*Principal); ok && p != nil {
		return p, true
	}
	return nil, false
}
