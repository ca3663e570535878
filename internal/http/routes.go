package httpx

import (
	"net/http"

	domainauth "github.com/aerolink/charter-ops/internal/domain/auth"
	"github.com/aerolink/charter-ops/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth       *service.AuthService
	Crew       *service.CrewService
	Aircraft   *service.AircraftService
	FlightLogs *service.FlightLogService
	Expenses   *service.ExpenseService

	// Policy is the central operation -> roles table consulted by the
	// authorization middleware. DefaultPolicy when nil.
	Policy domainauth.Policy
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	policy := services.Policy
	if policy == nil {
		policy = domainauth.DefaultPolicy()
	}

	gate := func(op domainauth.Operation) func(http.Handler) http.Handler {
		return RequireOperation(services.Auth, policy, op)
	}

	registerAuthRoutes(mux, &AuthHandlers{Svc: services.Auth})
	registerCrewRoutes(mux, &CrewHandlers{Svc: services.Crew}, gate)
	registerAircraftRoutes(mux, &AircraftHandlers{Svc: services.Aircraft}, gate)
	registerLogbookRoutes(mux, &LogbookHandlers{Svc: services.FlightLogs}, gate)
	registerExpenseRoutes(mux, &ExpenseHandlers{Svc: services.Expenses}, gate)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}

// middlewareFactory builds the authorization middleware for one operation.
type middlewareFactory func(domainauth.Operation) func(http.Handler) http.Handler

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /auth/register", h.Register)
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/verify", h.Verify)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/user", h.UserByID)
	mux.HandleFunc("GET /auth/roles", h.RolesByUserID)
}

// registerCrewRoutes wires the crew roster. CORS is scoped to this surface
// only; the external scheduling frontend reads it cross-origin.
func registerCrewRoutes(mux *http.ServeMux, h *CrewHandlers, gate middlewareFactory) {
	cors := CORS()
	mux.Handle("GET /crew", cors(gate(domainauth.OpCrewList)(http.HandlerFunc(h.List))))
	mux.Handle("OPTIONS /crew", cors(http.NotFoundHandler()))
}

func registerAircraftRoutes(mux *http.ServeMux, h *AircraftHandlers, gate middlewareFactory) {
	registerCRUD(mux, crudRoutes{
		Base:            "/api/aircraft",
		Create:          h.Create,
		List:            h.List,
		GetByID:         h.GetByID,
		Update:          h.Update,
		Delete:          h.Delete,
		ReadMiddleware:  gate(domainauth.OpAircraftRead),
		WriteMiddleware: gate(domainauth.OpAircraftManage),
	})
}

func registerLogbookRoutes(mux *http.ServeMux, h *LogbookHandlers, gate middlewareFactory) {
	write := gate(domainauth.OpLogbookWrite)
	read := gate(domainauth.OpLogbookRead)
	mux.Handle("POST /api/logbook", write(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/logbook", read(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/logbook/{id}", read(http.HandlerFunc(h.GetByID)))
}

func registerExpenseRoutes(mux *http.ServeMux, h *ExpenseHandlers, gate middlewareFactory) {
	registerCRUD(mux, crudRoutes{
		Base:            "/api/expenses",
		Create:          h.Create,
		List:            h.List,
		GetByID:         h.GetByID,
		Update:          h.Update,
		Delete:          h.Delete,
		ReadMiddleware:  gate(domainauth.OpExpenseRead),
		WriteMiddleware: gate(domainauth.OpExpenseWrite),
	})

	mux.Handle("GET /api/reconciliation",
		gate(domainauth.OpReconciliationRead)(http.HandlerFunc(h.Reconcile)))
}

// crudRoutes describes standard CRUD routes for a resource base path. Read
// and write routes may carry different authorization middleware.
type crudRoutes struct {
	Base            string
	Create          http.HandlerFunc
	List            http.HandlerFunc
	GetByID         http.HandlerFunc
	Update          http.HandlerFunc
	Delete          http.HandlerFunc
	ReadMiddleware  func(http.Handler) http.Handler
	WriteMiddleware func(http.Handler) http.Handler
}

func registerCRUD(mux *http.ServeMux, cfg crudRoutes) {
	if cfg.Base == "" {
		panic("registerCRUD: Base must not be empty") //nolint:forbidigo // Fail fast during server setup.
	}
	if cfg.Create == nil ||
		cfg.List == nil ||
		cfg.GetByID == nil ||
		cfg.Update == nil ||
		cfg.Delete == nil {
		panic("registerCRUD: nil handler for base " + cfg.Base) //nolint:forbidigo // Fail fast during server setup.
	}

	wrap := func(mw func(http.Handler) http.Handler, h http.HandlerFunc) http.Handler {
		if mw != nil {
			return mw(h)
		}
		return h
	}
	mux.Handle("POST "+cfg.Base, wrap(cfg.WriteMiddleware, cfg.Create))
	mux.Handle("GET "+cfg.Base, wrap(cfg.ReadMiddleware, cfg.List))
	mux.Handle("GET "+cfg.Base+"/{id}", wrap(cfg.ReadMiddleware, cfg.GetByID))
	mux.Handle("PUT "+cfg.Base+"/{id}", wrap(cfg.WriteMiddleware, cfg.Update))
	mux.Handle("DELETE "+cfg.Base+"/{id}", wrap(cfg.WriteMiddleware, cfg.Delete))
}
