package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/aerolink/charter-ops/config"
	"github.com/aerolink/charter-ops/internal/adapters/bcrypthash"
	"github.com/aerolink/charter-ops/internal/adapters/jwtcodec"
	"github.com/aerolink/charter-ops/internal/adapters/redisdeny"
	"github.com/aerolink/charter-ops/internal/data"
	"github.com/aerolink/charter-ops/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth       *service.AuthService
	Crew       *service.CrewService
	Aircraft   *service.AircraftService
	FlightLogs *service.FlightLogService
	Expenses   *service.ExpenseService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	Users     *data.UserRepo
	Roles     *data.RoleRepo
	Crew      *data.CrewRepo
	Aircraft  *data.AircraftRepo
	FlightLog *data.FlightLogRepo
	Expenses  *data.ExpenseRepo
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB) *serviceRepositories {
	return &serviceRepositories{
		Users:     data.NewUserRepo(db),
		Roles:     data.NewRoleRepo(db),
		Crew:      data.NewCrewRepo(db),
		Aircraft:  data.NewAircraftRepo(db),
		FlightLog: data.NewFlightLogRepo(db),
		Expenses:  data.NewExpenseRepo(db),
	}
}

// NewServices wires adapters and repositories into the service container.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	cfg := deps.Config
	repos := buildRepositories(deps.DB)

	codec, err := jwtcodec.New(jwtcodec.Options{
		Secret: cfg.Auth.TokenSecret,
		TTL:    cfg.Auth.TokenTTL,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build token codec: %w", err)
	}

	hasher := bcrypthash.New(cfg.Auth.BcryptCost)
	denylist := redisdeny.New(deps.RedisClient)

	auth := service.NewAuthService(service.AuthServiceOptions{
		Users:    repos.Users,
		Roles:    repos.Roles,
		Codec:    codec,
		Hasher:   hasher,
		Denylist: denylist,
		TokenTTL: codec.TTL(),
	})

	return ServiceContainer{
		Auth:       auth,
		Crew:       service.NewCrewService(repos.Crew),
		Aircraft:   service.NewAircraftService(repos.Aircraft),
		FlightLogs: service.NewFlightLogService(repos.FlightLog, repos.Aircraft),
		Expenses:   service.NewExpenseService(repos.Expenses),
	}, nil
}
