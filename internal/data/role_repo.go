package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aerolink/charter-ops/internal/data/pgxutil"
	domainauth "github.com/aerolink/charter-ops/internal/domain/auth"
)

// RoleRepo resolves role assignments from the user_roles table.
type RoleRepo struct {
	DB *sql.DB
}

// NewRoleRepo creates a new RoleRepo.
func NewRoleRepo(db *sql.DB) *RoleRepo {
	return &RoleRepo{DB: db}
}

const rolesOfQuery = `SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`

// RolesOf returns the typed role set assigned to a user id. A user with no
// assignments (or no such user) yields an empty set, not an error. Raw
// storage may contain strings outside the enumeration; those are filtered
// out here and never surface as typed roles.
func (r *RoleRepo) RolesOf(ctx context.Context, userID string) ([]domainauth.Role, error) {
	var raw []string
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, rolesOfQuery, userID)
		if err != nil {
			return err
		}
		raw, err = pgx.CollectRows(rows, pgx.RowTo[string])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve roles: %w", err)
	}
	return domainauth.ParseRoles(raw), nil
}
