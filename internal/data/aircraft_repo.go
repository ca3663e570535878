package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aerolink/charter-ops/internal/data/pgxutil"
	"github.com/aerolink/charter-ops/internal/domain/model"
)

// AircraftRepo provides database operations for the fleet registry.
type AircraftRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAircraftRepo creates a new AircraftRepo with real time provider.
func NewAircraftRepo(db *sql.DB) *AircraftRepo {
	return &AircraftRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

const (
	aircraftColumns = `id, registration, model, capacity, active, created_at, updated_at`

	aircraftGetByIDQuery = `
		SELECT id, registration, model, capacity, active, created_at, updated_at
		FROM aircraft
		WHERE id = $1`

	aircraftListQuery = `
		SELECT id, registration, model, capacity, active, created_at, updated_at
		FROM aircraft
		ORDER BY registration
		LIMIT $1 OFFSET $2`
)

// Create inserts a new aircraft.
func (r *AircraftRepo) Create(
	ctx context.Context,
	req *model.CreateAircraftRequest,
) (*model.Aircraft, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: create aircraft request is required", ErrInvalidRequest)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := r.timeProvider.Now().UTC()
	var out model.Aircraft
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO aircraft (id, registration, model, capacity, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			RETURNING `+aircraftColumns,
			uuid.NewString(), req.Registration, req.Model, req.Capacity, active, now)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Aircraft])
		return err
	}); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrRegistrationExists
		}
		return nil, fmt.Errorf("failed to create aircraft: %w", err)
	}
	return &out, nil
}

// GetByID retrieves an aircraft by ID.
func (r *AircraftRepo) GetByID(ctx context.Context, id string) (*model.Aircraft, error) {
	var out model.Aircraft
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, aircraftGetByIDQuery, id)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Aircraft])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAircraftNotFound
		}
		return nil, fmt.Errorf("failed to get aircraft by ID: %w", err)
	}
	return &out, nil
}

// List retrieves aircraft with pagination, ordered by registration.
func (r *AircraftRepo) List(ctx context.Context, limit, offset int) ([]*model.Aircraft, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.Aircraft
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, aircraftListQuery, limit, offset)
		if err != nil {
			return err
		}
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Aircraft])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list aircraft: %w", err)
	}

	res := make([]*model.Aircraft, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of an aircraft.
func (r *AircraftRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateAircraftRequest,
) (*model.Aircraft, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	setParts := make([]string, 0, 4)
	args := make([]any, 0, 5)
	nextIdx := func() int { return len(args) + 1 }

	if req.Model != nil {
		setParts = append(setParts, fmt.Sprintf("model = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Model))
	}
	if req.Capacity != nil {
		setParts = append(setParts, fmt.Sprintf("capacity = $%d", nextIdx()))
		args = append(args, *req.Capacity)
	}
	if req.Active != nil {
		setParts = append(setParts, fmt.Sprintf("active = $%d", nextIdx()))
		args = append(args, *req.Active)
	}

	if len(setParts) == 0 {
		return r.GetByID(ctx, id)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())
	args = append(args, id)

	query := "UPDATE aircraft SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + aircraftColumns

	var out model.Aircraft
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Aircraft])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAircraftNotFound
		}
		return nil, fmt.Errorf("failed to update aircraft: %w", err)
	}
	return &out, nil
}

// Delete deletes an aircraft by ID.
func (r *AircraftRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM aircraft WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete aircraft: %w", err)
	}
	return rows > 0, nil
}
