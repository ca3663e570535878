package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aerolink/charter-ops/internal/data/pgxutil"
	domainauth "github.com/aerolink/charter-ops/internal/domain/auth"
	"github.com/aerolink/charter-ops/internal/domain/model"
)

// CrewRepo reads the crew roster by joining profiles with role assignments.
type CrewRepo struct {
	DB *sql.DB
}

// NewCrewRepo creates a new CrewRepo.
func NewCrewRepo(db *sql.DB) *CrewRepo {
	return &CrewRepo{DB: db}
}

const crewListByRolesQuery = `
	SELECT p.id, p.email, p.full_name, p.display_name, array_agg(ur.role ORDER BY ur.role) AS roles
	FROM user_profiles p
	JOIN user_roles ur ON ur.user_id = p.id
	WHERE ur.role = ANY($1)
	GROUP BY p.id, p.email, p.full_name, p.display_name`

// crewRow is the scan target for the roster query.
type crewRow struct {
	ID          string   `db:"id"`
	Email       string   `db:"email"`
	FullName    string   `db:"full_name"`
	DisplayName string   `db:"display_name"`
	Roles       []string `db:"roles"`
}

// ListByRoles returns the profiles of users holding at least one of the
// given roles. Ordering is left to the caller; the service applies
// locale-aware collation, which Postgres text ordering does not guarantee.
func (r *CrewRepo) ListByRoles(
	ctx context.Context,
	roles []domainauth.Role,
) ([]*model.CrewMember, error) {
	wanted := make([]string, len(roles))
	for i, role := range roles {
		wanted[i] = string(role)
	}

	var rowsOut []crewRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, crewListByRolesQuery, wanted)
		if err != nil {
			return err
		}
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[crewRow])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list crew: %w", err)
	}

	res := make([]*model.CrewMember, len(rowsOut))
	for i := range rowsOut {
		res[i] = &model.CrewMember{
			ID:          rowsOut[i].ID,
			Email:       rowsOut[i].Email,
			FullName:    rowsOut[i].FullName,
			DisplayName: rowsOut[i].DisplayName,
			Roles:       rowsOut[i].Roles,
		}
	}
	return res, nil
}
