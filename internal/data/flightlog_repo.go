package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aerolink/charter-ops/internal/data/pgxutil"
	"github.com/aerolink/charter-ops/internal/domain/model"
)

// FlightLogRepo provides database operations for aircraft logbook entries.
// Entries are append-only: the logbook is an audit record, so there is no
// update or delete path.
type FlightLogRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewFlightLogRepo creates a new FlightLogRepo with real time provider.
func NewFlightLogRepo(db *sql.DB) *FlightLogRepo {
	return &FlightLogRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

const (
	flightLogColumns = `id, aircraft_id, pilot_id, log_date, origin, destination,
		block_minutes, cycles, remarks, created_at`

	flightLogGetByIDQuery = `
		SELECT id, aircraft_id, pilot_id, log_date, origin, destination,
		       block_minutes, cycles, remarks, created_at
		FROM flight_logs
		WHERE id = $1`
)

// Create appends a logbook entry attributed to pilotID.
func (r *FlightLogRepo) Create(
	ctx context.Context,
	pilotID string,
	req *model.CreateFlightLogRequest,
) (*model.FlightLog, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: create flight log request is required", ErrInvalidRequest)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	var out model.FlightLog
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO flight_logs (id, aircraft_id, pilot_id, log_date, origin, destination,
				block_minutes, cycles, remarks, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING `+flightLogColumns,
			uuid.NewString(), req.AircraftID, pilotID, req.LogDate, req.Origin,
			req.Destination, req.BlockMinutes, req.Cycles, req.Remarks,
			r.timeProvider.Now().UTC())
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.FlightLog])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create flight log: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a logbook entry by ID.
func (r *FlightLogRepo) GetByID(ctx context.Context, id string) (*model.FlightLog, error) {
	var out model.FlightLog
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, flightLogGetByIDQuery, id)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.FlightLog])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFlightLogNotFound
		}
		return nil, fmt.Errorf("failed to get flight log by ID: %w", err)
	}
	return &out, nil
}

// List retrieves logbook entries, newest first, with optional aircraft and
// pilot filters.
func (r *FlightLogRepo) List(
	ctx context.Context,
	opts model.FlightLogListOptions,
) ([]*model.FlightLog, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	conds := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if opts.AircraftID != nil && strings.TrimSpace(*opts.AircraftID) != "" {
		args = append(args, strings.TrimSpace(*opts.AircraftID))
		conds = append(conds, "aircraft_id = $"+strconv.Itoa(len(args)))
	}
	if opts.PilotID != nil && strings.TrimSpace(*opts.PilotID) != "" {
		args = append(args, strings.TrimSpace(*opts.PilotID))
		conds = append(conds, "pilot_id = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT id, aircraft_id, pilot_id, log_date, origin, destination,
		block_minutes, cycles, remarks, created_at FROM flight_logs`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit)
	query += " ORDER BY log_date DESC, created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	var rowsOut []model.FlightLog
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.FlightLog])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list flight logs: %w", err)
	}

	res := make([]*model.FlightLog, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
