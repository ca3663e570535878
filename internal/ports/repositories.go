package ports

import (
	"context"

	domainauth "github.com/aerolink/charter-ops/internal/domain/auth"
	"github.com/aerolink/charter-ops/internal/domain/model"
)

// UserRepository persists identity and profile records.
type UserRepository interface {
	// Create inserts a user and upserts the companion profile in one
	// transaction. The users.email unique constraint is the authoritative
	// duplicate check; violations surface as conflict errors.
	Create(ctx context.Context, user *model.User, profile *model.UserProfile) (*model.User, error)

	// GetByEmail looks a user up by exact, case-sensitive email match.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	GetByID(ctx context.Context, id string) (*model.User, error)

	// EmailExists is an advisory pre-check only; callers must not rely on
	// it for correctness under concurrency.
	EmailExists(ctx context.Context, email string) (bool, error)
}

// CrewRepository reads the crew roster.
type CrewRepository interface {
	// ListByRoles returns the profiles of users holding at least one of
	// the given roles, with the raw role strings they hold.
	ListByRoles(ctx context.Context, roles []domainauth.Role) ([]*model.CrewMember, error)
}

// AircraftRepository persists fleet registry entries.
type AircraftRepository interface {
	Create(ctx context.Context, req *model.CreateAircraftRequest) (*model.Aircraft, error)
	GetByID(ctx context.Context, id string) (*model.Aircraft, error)
	List(ctx context.Context, limit, offset int) ([]*model.Aircraft, error)
	Update(ctx context.Context, id string, req model.UpdateAircraftRequest) (*model.Aircraft, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// FlightLogRepository persists aircraft logbook entries.
type FlightLogRepository interface {
	Create(ctx context.Context, pilotID string, req *model.CreateFlightLogRequest) (*model.FlightLog, error)
	GetByID(ctx context.Context, id string) (*model.FlightLog, error)
	List(ctx context.Context, opts model.FlightLogListOptions) ([]*model.FlightLog, error)
}

// ExpenseRepository persists expense reports and reconciliation reads.
type ExpenseRepository interface {
	Create(ctx context.Context, submittedBy string, req *model.CreateExpenseRequest) (*model.Expense, error)
	GetByID(ctx context.Context, id string) (*model.Expense, error)
	List(ctx context.Context, opts model.ExpenseListOptions) ([]*model.Expense, error)
	Update(ctx context.Context, id string, req model.UpdateExpenseRequest) (*model.Expense, error)
	Delete(ctx context.Context, id string) (bool, error)

	// SummarizeByClient aggregates expense totals for one client grouped
	// by currency and status.
	SummarizeByClient(ctx context.Context, clientID string) (*model.ClientReconciliation, error)
}
