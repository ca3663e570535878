package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aerolink/charter-ops/internal/data"
	domainauth "github.com/aerolink/charter-ops/internal/domain/auth"
	"github.com/aerolink/charter-ops/internal/domain/model"
	apperrors "github.com/aerolink/charter-ops/internal/errors"
	"github.com/aerolink/charter-ops/internal/ports"
)

// invalidCredentialsMessage is the single rejection for both unknown email
// and wrong password. Both paths must produce bit-identical responses so a
// caller cannot probe which emails are registered.
const invalidCredentialsMessage = "invalid email or password"

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users    ports.UserRepository
	Roles    ports.RoleResolver
	Codec    ports.TokenCodec
	Hasher   ports.PasswordHasher
	Denylist ports.TokenDenylist

	// TokenTTL bounds how long a revoked token id is remembered. It should
	// match the codec's validity window.
	TokenTTL time.Duration

	// Now overrides the clock in tests.
	Now func() time.Time
}

// AuthService orchestrates registration, login, token verification, and
// logout over the user store and token codec.
type AuthService struct {
	users    ports.UserRepository
	roles    ports.RoleResolver
	codec    ports.TokenCodec
	hasher   ports.PasswordHasher
	denylist ports.TokenDenylist
	tokenTTL time.Duration
	now      func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		users:    opts.Users,
		roles:    opts.Roles,
		codec:    opts.Codec,
		hasher:   opts.Hasher,
		denylist: opts.Denylist,
		tokenTTL: opts.TokenTTL,
		now:      now,
	}
}

// AuthResult pairs an authenticated user with a freshly issued token.
type AuthResult struct {
	User  model.User
	Token string
}

// Register creates a user, upserts the companion profile, and issues a
// session token. Duplicate email detection is authoritative at the store's
// unique constraint; the pre-check only shortcuts the common case.
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*AuthResult, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		var weak *model.WeakPasswordError
		if errors.As(err, &weak) {
			return nil, &apperrors.AppError{
				Code:    apperrors.ErrCodeValidation,
				Message: "password failed checks: " + strings.Join(weak.Failed, ", "),
				Field:   "password",
				Cause:   err,
			}
		}
		return nil, apperrors.Validation(err.Error())
	}

	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	if exists {
		return nil, apperrors.Conflict("email already registered")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "hash password")
	}

	id := uuid.NewString()
	user := &model.User{
		ID:           id,
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
	}
	profile := &model.UserProfile{
		ID:       id,
		Email:    req.Email,
		FullName: req.FullName,
	}

	created, err := s.users.Create(ctx, user, profile)
	if err != nil {
		if errors.Is(err, data.ErrEmailExists) {
			return nil, apperrors.Conflict("email already registered")
		}
		return nil, apperrors.MapDBError(err)
	}

	token, err := s.codec.Issue(created.ID, created.Email)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "issue token")
	}

	return &AuthResult{User: created.Sanitized(), Token: token}, nil
}

// Login checks credentials and issues a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*AuthResult, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, apperrors.Unauthorized(invalidCredentialsMessage)
		}
		return nil, apperrors.MapDBError(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(invalidCredentialsMessage)
	}

	token, err := s.codec.Issue(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "issue token")
	}

	return &AuthResult{User: user.Sanitized(), Token: token}, nil
}

// VerifySession validates a token and re-fetches its user so name and role
// changes since issuance are reflected. Revoked tokens are rejected even
// when their signature and expiry are still valid.
func (s *AuthService) VerifySession(ctx context.Context, token string) (*model.User, domainauth.Claims, error) {
	claims, err := s.codec.Verify(token)
	if err != nil {
		return nil, domainauth.Claims{}, apperrors.Unauthorized("invalid or expired token")
	}

	if s.denylist != nil && claims.TokenID != "" {
		revoked, err := s.denylist.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			return nil, domainauth.Claims{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "check token revocation")
		}
		if revoked {
			return nil, domainauth.Claims{}, apperrors.Unauthorized("invalid or expired token")
		}
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, domainauth.Claims{}, apperrors.NotFound("user not found")
		}
		return nil, domainauth.Claims{}, apperrors.MapDBError(err)
	}

	sanitized := user.Sanitized()
	return &sanitized, claims, nil
}

// Logout revokes the presented token for its remaining lifetime. An invalid
// token is rejected rather than silently ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.codec.Verify(token)
	if err != nil {
		return apperrors.Unauthorized("invalid or expired token")
	}
	if s.denylist == nil || claims.TokenID == "" {
		return nil
	}

	ttl := s.tokenTTL
	if !claims.IssuedAt.IsZero() {
		remaining := s.tokenTTL - s.now().Sub(claims.IssuedAt)
		if remaining <= 0 {
			return nil
		}
		ttl = remaining
	}

	if err := s.denylist.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "revoke token")
	}
	return nil
}

// GetUser retrieves a user by id with the password hash stripped.
func (s *AuthService) GetUser(ctx context.Context, id string) (*model.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.ValidationField("id", "id is required")
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

// RolesOf resolves the typed roles assigned to a user. Unknown stored
// values are filtered; a user with no assignments gets an empty set.
func (s *AuthService) RolesOf(ctx context.Context, userID string) ([]domainauth.Role, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.ValidationField("userId", "userId is required")
	}
	roles, err := s.roles.RolesOf(ctx, userID)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	if roles == nil {
		roles = []domainauth.Role{}
	}
	return roles, nil
}
