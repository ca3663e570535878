package auth

// Package auth contains domain-level types for authentication and
// authorization. It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application authorization role. Values are the strings
// stored in the user_roles table (the legacy dataset is Portuguese-language).
// Keep string form for easy persistence.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleManagerMaster Role = "gestor_master"
	RoleFinanceMaster Role = "financeiro_master"
	RoleFinance       Role = "financeiro"
	RoleOperations    Role = "operacoes"
	RoleChiefPilot    Role = "piloto_chefe"
	RoleCrewMember    Role = "tripulante"
	RoleShareholder   Role = "cotista"
)

// knownRoles is the closed enumeration used by ParseRole.
var knownRoles = map[Role]struct{}{
	RoleAdmin:         {},
	RoleManagerMaster: {},
	RoleFinanceMaster: {},
	RoleFinance:       {},
	RoleOperations:    {},
	RoleChiefPilot:    {},
	RoleCrewMember:    {},
	RoleShareholder:   {},
}

// ParseRole converts a raw stored string into a typed Role.
// Unknown values return ok=false; storage may legitimately contain strings
// outside the enumeration and callers must filter rather than fail.
func ParseRole(raw string) (Role, bool) {
	r := Role(raw)
	_, ok := knownRoles[r]
	return r, ok
}

// ParseRoles filters a list of raw role strings into the typed enumeration,
// silently dropping unknown values. The result preserves input order and
// deduplicates.
func ParseRoles(raw []string) []Role {
	out := make([]Role, 0, len(raw))
	seen := make(map[Role]struct{}, len(raw))
	for _, s := range raw {
		r, ok := ParseRole(s)
		if !ok {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Claims is the identity assertion carried by a session token.
// The codec never dereferences the user store; callers resolve UserID
// against it after verification.
type Claims struct {
	UserID   string
	Email    string
	IssuedAt time.Time
	// TokenID is the token's unique identifier (jti), used for revocation.
	TokenID string
}
