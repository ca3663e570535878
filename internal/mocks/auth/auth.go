package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aerolink/charter-ops/internal/data"
	domainauth "github.com/aerolink/charter-ops/internal/domain/auth"
	"github.com/aerolink/charter-ops/internal/domain/model"
	"github.com/aerolink/charter-ops/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.UserRepository = (*MemoryUserRepo)(nil)
	_ ports.RoleResolver   = (*StaticRoleResolver)(nil)
	_ ports.TokenDenylist  = (*MemoryDenylist)(nil)
	_ ports.PasswordHasher = (*FakeHasher)(nil)
	_ ports.CrewRepository = (*StaticCrewRepo)(nil)
)

// MemoryUserRepo is an in-memory user store for unit tests. It enforces the
// same email uniqueness the real store's constraint does.
type MemoryUserRepo struct {
	mu       sync.Mutex
	byID     map[string]*model.User
	byEmail  map[string]*model.User
	Profiles map[string]*model.UserProfile

	// CreateErr, when set, is returned by Create before any state change.
	CreateErr error
}

// NewMemoryUserRepo creates an empty in-memory user store.
func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{
		byID:     make(map[string]*model.User),
		byEmail:  make(map[string]*model.User),
		Profiles: make(map[string]*model.UserProfile),
	}
}

func (m *MemoryUserRepo) Create(_ context.Context, user *model.User, profile *model.UserProfile) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	if _, exists := m.byEmail[user.Email]; exists {
		return nil, data.ErrEmailExists
	}

	stored := *user
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	m.byID[stored.ID] = &stored
	m.byEmail[stored.Email] = &stored
	if profile != nil {
		p := *profile
		m.Profiles[p.ID] = &p
	}

	out := stored
	return &out, nil
}

func (m *MemoryUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return nil, data.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (m *MemoryUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, data.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (m *MemoryUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.byEmail[email]
	return ok, nil
}

// StaticRoleResolver resolves roles from a fixed map. Missing users get an
// empty set, matching the real resolver's behavior.
type StaticRoleResolver struct {
	Roles map[string][]domainauth.Role
	Err   error
}

func (s *StaticRoleResolver) RolesOf(_ context.Context, userID string) ([]domainauth.Role, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Roles[userID], nil
}

// MemoryDenylist is an in-memory token denylist for unit tests.
type MemoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewMemoryDenylist creates an empty in-memory denylist.
func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{revoked: make(map[string]time.Time)}
}

func (m *MemoryDenylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return errors.New("token id cannot be empty")
	}
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = time.Now().Add(ttl)
	return nil
}

func (m *MemoryDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.revoked[tokenID]
	if !ok {
		return false, nil
	}
	return time.Now().Before(exp), nil
}

// FakeHasher is a trivially reversible hasher for tests that do not
// exercise bcrypt itself.
type FakeHasher struct{}

func (FakeHasher) Hash(password string) (string, error) {
	return "fake:" + password, nil
}

func (FakeHasher) Compare(hash, password string) error {
	if hash != "fake:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

// StaticCrewRepo returns a preset crew roster regardless of the requested
// role filter.
type StaticCrewRepo struct {
	Members []*model.CrewMember
	Err     error
}

func (s *StaticCrewRepo) ListByRoles(_ context.Context, _ []domainauth.Role) ([]*model.CrewMember, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]*model.CrewMember, len(s.Members))
	copy(out, s.Members)
	return out, nil
}
