package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aerolink/charter-ops/internal/data/pgxutil"
	"github.com/aerolink/charter-ops/internal/domain/model"
)

// UserRepo provides database operations for users and their profiles.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider (useful for tests).
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

// SQL query constants for static queries.
const (
	userInsertQuery = `
		INSERT INTO users (id, email, password_hash, full_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id, email, password_hash, full_name, created_at, updated_at`

	profileUpsertQuery = `
		INSERT INTO user_profiles (id, email, full_name, display_name, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			email        = EXCLUDED.email,
			full_name    = EXCLUDED.full_name,
			display_name = EXCLUDED.display_name,
			updated_at   = EXCLUDED.updated_at`

	userGetByEmailQuery = `
		SELECT id, email, password_hash, full_name, created_at, updated_at
		FROM users
		WHERE email = $1`

	userGetByIDQuery = `
		SELECT id, email, password_hash, full_name, created_at, updated_at
		FROM users
		WHERE id = $1`

	userEmailExistsQuery = `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
)

// Create inserts a user and upserts the companion profile within one
// transaction. The users.email unique constraint is authoritative for
// duplicate detection; a violation surfaces as ErrEmailExists.
func (r *UserRepo) Create(
	ctx context.Context,
	user *model.User,
	profile *model.UserProfile,
) (*model.User, error) {
	if user == nil {
		return nil, errors.New("user is required")
	}

	now := r.timeProvider.Now().UTC()
	var out model.User
	err := pgxutil.WithPgxTx(ctx, r.DB, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, userInsertQuery,
			user.ID, user.Email, user.PasswordHash, user.FullName, now)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		if err != nil {
			return err
		}
		if profile == nil {
			return nil
		}
		_, err = tx.Exec(ctx, profileUpsertQuery,
			profile.ID, profile.Email, profile.FullName, profile.DisplayName, now)
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &out, nil
}

// GetByEmail retrieves a user by exact, case-sensitive email match.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getByQuery(ctx, userGetByEmailQuery, "failed to get user by email", email)
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getByQuery(ctx, userGetByIDQuery, "failed to get user by ID", id)
}

// EmailExists reports whether the email is already registered.
// Advisory only: concurrent registrations are decided by the unique
// constraint at insert time, not by this check.
func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, userEmailExistsQuery, email).Scan(&exists)
	})
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// getByQuery executes a single-row user query with sentinel mapping.
func (r *UserRepo) getByQuery(
	ctx context.Context,
	q string,
	errMsg string,
	args ...any,
) (*model.User, error) {
	var user model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		user, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &user, nil
}
