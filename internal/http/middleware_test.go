package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/aerolink/charter-ops/internal/domain/auth"
	"github.com/aerolink/charter-ops/internal/domain/model"
	apperrors "github.com/aerolink/charter-ops/internal/errors"
)

// fakeAuthService implements the AuthService slice used by the middleware.
type fakeAuthService struct {
	user      *model.User
	claims    domainauth.Claims
	verifyErr error
	roles     []domainauth.Role
	rolesErr  error
}

func (f *fakeAuthService) VerifySession(context.Context, string) (*model.User, domainauth.Claims, error) {
	if f.verifyErr != nil {
		return nil, domainauth.Claims{}, f.verifyErr
	}
	return f.user, f.claims, nil
}

func (f *fakeAuthService) RolesOf(context.Context, string) ([]domainauth.Role, error) {
	return f.roles, f.rolesErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "well formed", header: "Bearer abc123", want: "abc123"},
		{name: "case insensitive scheme", header: "bearer abc123", want: "abc123"},
		{name: "missing header", header: "", want: ""},
		{name: "wrong scheme", header: "Basic abc123", want: ""},
		{name: "scheme only", header: "Bearer", want: ""},
		{name: "extra whitespace", header: "Bearer  abc123", want: "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, BearerToken(r))
		})
	}
}

func gateRequest(t *testing.T, auth AuthService, op domainauth.Operation, token string) (*httptest.ResponseRecorder, *Principal) {
	t.Helper()
	var principal *Principal
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, _ = GetPrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireOperation(auth, domainauth.DefaultPolicy(), op)(inner)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, principal
}

func TestRequireOperation_NoToken(t *testing.T) {
	rec, _ := gateRequest(t, &fakeAuthService{}, domainauth.OpCrewList, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "no_token", decodeErrorBody(t, rec)["error"])
}

func TestRequireOperation_InvalidToken(t *testing.T) {
	auth := &fakeAuthService{verifyErr: apperrors.Unauthorized("invalid or expired token")}
	rec, _ := gateRequest(t, auth, domainauth.OpCrewList, "bad")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_token", decodeErrorBody(t, rec)["error"])
}

func TestRequireOperation_VerifyTimeoutKeeps503(t *testing.T) {
	auth := &fakeAuthService{verifyErr: &apperrors.AppError{Code: apperrors.ErrCodeTimeout, Message: "deadline"}}
	rec, _ := gateRequest(t, auth, domainauth.OpCrewList, "tok")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "timeout", decodeErrorBody(t, rec)["error"])
}

func TestRequireOperation_Forbidden(t *testing.T) {
	auth := &fakeAuthService{
		user:  &model.User{ID: "u-1"},
		roles: []domainauth.Role{domainauth.RoleShareholder},
	}
	rec, _ := gateRequest(t, auth, domainauth.OpCrewList, "tok")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", decodeErrorBody(t, rec)["error"])
}

func TestRequireOperation_NoRolesForbidden(t *testing.T) {
	auth := &fakeAuthService{user: &model.User{ID: "u-1"}}
	rec, _ := gateRequest(t, auth, domainauth.OpCrewList, "tok")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireOperation_AttachesPrincipal(t *testing.T) {
	auth := &fakeAuthService{
		user:   &model.User{ID: "u-1", Email: "ana@aerolink.com.br"},
		claims: domainauth.Claims{UserID: "u-1", TokenID: "jti-1"},
		roles:  []domainauth.Role{domainauth.RoleOperations},
	}
	rec, principal := gateRequest(t, auth, domainauth.OpCrewList, "tok")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, principal)
	assert.Equal(t, "u-1", principal.User.ID)
	assert.Equal(t, "jti-1", principal.Claims.TokenID)
	assert.Equal(t, []domainauth.Role{domainauth.RoleOperations}, principal.Roles)
}

func TestCORS_Headers(t *testing.T) {
	handler := CORS()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/crew", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/crew", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestTimeout_SetsDeadline(t *testing.T) {
	var deadlineSet bool
	handler := Timeout(time.Minute)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, deadlineSet = r.Context().Deadline()
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, deadlineSet)
}

func TestTimeout_DisabledWhenNonPositive(t *testing.T) {
	var deadlineSet bool
	handler := Timeout(0)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, deadlineSet = r.Context().Deadline()
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, deadlineSet)
}

func TestRecover_PanicBecomesInternalError(t *testing.T) {
	handler := Recover(testLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, "internal", body["error"])
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestLogging_PassesThrough(t *testing.T) {
	handler := Logging(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
