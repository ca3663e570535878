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

// ExpenseRepo provides database operations for client expense reports.
type ExpenseRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewExpenseRepo creates a new ExpenseRepo with real time provider.
func NewExpenseRepo(db *sql.DB) *ExpenseRepo {
	return &ExpenseRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

const (
	expenseColumns = `id, client_id, submitted_by, category, description,
		amount_cents, currency, incurred_on, status, created_at, updated_at`

	expenseGetByIDQuery = `
		SELECT id, client_id, submitted_by, category, description,
		       amount_cents, currency, incurred_on, status, created_at, updated_at
		FROM expenses
		WHERE id = $1`

	expenseSummarizeQuery = `
		SELECT currency, status, SUM(amount_cents) AS total_cents, COUNT(*) AS count
		FROM expenses
		WHERE client_id = $1
		GROUP BY currency, status
		ORDER BY currency, status`

	expenseIDsByClientQuery = `
		SELECT id FROM expenses
		WHERE client_id = $1
		ORDER BY incurred_on, created_at`
)

// Create files a new expense report submitted by submittedBy.
func (r *ExpenseRepo) Create(
	ctx context.Context,
	submittedBy string,
	req *model.CreateExpenseRequest,
) (*model.Expense, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: create expense request is required", ErrInvalidRequest)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	now := r.timeProvider.Now().UTC()
	var out model.Expense
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO expenses (id, client_id, submitted_by, category, description,
				amount_cents, currency, incurred_on, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
			RETURNING `+expenseColumns,
			uuid.NewString(), req.ClientID, submittedBy, req.Category, req.Description,
			req.AmountCents, req.Currency, req.IncurredOn, model.ExpenseStatusPending, now)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Expense])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return &out, nil
}

// GetByID retrieves an expense report by ID.
func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*model.Expense, error) {
	var out model.Expense
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, expenseGetByIDQuery, id)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Expense])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense by ID: %w", err)
	}
	return &out, nil
}

// List retrieves expense reports, newest first, with optional client and
// status filters.
func (r *ExpenseRepo) List(
	ctx context.Context,
	opts model.ExpenseListOptions,
) ([]*model.Expense, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	conds := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if opts.ClientID != nil && strings.TrimSpace(*opts.ClientID) != "" {
		args = append(args, strings.TrimSpace(*opts.ClientID))
		conds = append(conds, "client_id = $"+strconv.Itoa(len(args)))
	}
	if opts.Status != nil && *opts.Status != "" {
		args = append(args, *opts.Status)
		conds = append(conds, "status = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT id, client_id, submitted_by, category, description,
		amount_cents, currency, incurred_on, status, created_at, updated_at
		FROM expenses`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit)
	query += " ORDER BY incurred_on DESC, created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	var rowsOut []model.Expense
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Expense])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	res := make([]*model.Expense, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update reviews an expense report: status change and description edits.
func (r *ExpenseRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateExpenseRequest,
) (*model.Expense, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	setClauses := make([]string, 0, 3)
	args := make([]any, 0, 4)
	nextIdx := 1

	if req.Status != nil {
		setClauses = append(setClauses, "status = $"+strconv.Itoa(nextIdx))
		args = append(args, *req.Status)
		nextIdx++
	}
	if req.Description != nil {
		setClauses = append(setClauses, "description = $"+strconv.Itoa(nextIdx))
		args = append(args, *req.Description)
		nextIdx++
	}
	setClauses = append(setClauses, "updated_at = $"+strconv.Itoa(nextIdx))
	args = append(args, r.timeProvider.Now().UTC())
	nextIdx++

	query := "UPDATE expenses SET " + strings.Join(setClauses, ", ") +
		" WHERE id = $" + strconv.Itoa(nextIdx) +
		" RETURNING " + expenseColumns
	args = append(args, id)

	var out model.Expense
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Expense])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return &out, nil
}

// Delete removes an expense report. Returns true if a row was deleted.
func (r *ExpenseRepo) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, "DELETE FROM expenses WHERE id = $1", id)
		if err != nil {
			return err
		}
		deleted = tag.RowsAffected() > 0
		return nil
	}); err != nil {
		return false, fmt.Errorf("failed to delete expense: %w", err)
	}
	return deleted, nil
}

// SummarizeByClient aggregates a client's expenses into per-currency,
// per-status totals along with the contributing expense IDs.
func (r *ExpenseRepo) SummarizeByClient(
	ctx context.Context,
	clientID string,
) (*model.ClientReconciliation, error) {
	out := &model.ClientReconciliation{ClientID: clientID}
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, expenseSummarizeQuery, clientID)
		if err != nil {
			return err
		}
		out.Totals, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ReconciliationLine])
		if err != nil {
			return err
		}

		idRows, err := conn.Query(ctx, expenseIDsByClientQuery, clientID)
		if err != nil {
			return err
		}
		out.ExpenseIDs, err = pgx.CollectRows(idRows, pgx.RowTo[string])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to summarize expenses: %w", err)
	}
	return out, nil
}
