package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/aerolink/charter-ops/internal/domain/auth"
	"github.com/aerolink/charter-ops/internal/domain/model"
	apperrors "github.com/aerolink/charter-ops/internal/errors"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
// The client sees a generic internal error, never the panic value or stack.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					WriteError(w, ErrorParams{
						Code:    http.StatusInternalServerError,
						ErrCode: "internal",
						Err:     errors.New("internal server error"),
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Timeout returns a middleware that imposes a per-request deadline on the
// request context. Handlers see context.DeadlineExceeded from their store
// calls; the error taxonomy maps it to a 503 response.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CORS returns a middleware that allows cross-origin access from any
// origin. It is applied to the crew surface only; the rest of the API is
// same-origin.
func CORS() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken extracts the token from an Authorization header of the form
// "Bearer <token>". The empty string means no usable header was present.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// AuthService is the slice of service.AuthService the middleware needs.
// Declared here so tests can substitute a fake.
type AuthService interface {
	VerifySession(ctx context.Context, token string) (*model.User, domainauth.Claims, error)
	RolesOf(ctx context.Context, userID string) ([]domainauth.Role, error)
}

// RequireOperation returns a middleware that authorizes the request for the
// named operation, terminal on the first failure:
//  1. extract bearer token; missing -> 401 no_token
//  2. verify token and load its user; invalid/expired/revoked -> 401
//     invalid_token
//  3. resolve roles fresh from storage (no role claims in the token)
//  4. consult the policy table; empty intersection -> 403 forbidden
//
// On success the principal is attached to the request context.
func RequireOperation(auth AuthService, policy domainauth.Policy, op domainauth.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "no_token",
					Err:     errors.New("authorization token is required"),
				})
				return
			}

			user, claims, err := auth.VerifySession(r.Context(), token)
			if err != nil {
				writeVerifyFailure(w, err)
				return
			}

			roles, err := auth.RolesOf(r.Context(), user.ID)
			if err != nil {
				WriteAppError(w, err)
				return
			}
			principal := &Principal{User: user, Claims: claims, Roles: roles}

			if !domainauth.Allowed(principal.Roles, policy.RequiredRoles(op)) {
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "forbidden",
					Err:     errors.New("caller lacks a role permitted for this operation"),
				})
				return
			}

			ctx := SetPrincipalInContext(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeVerifyFailure maps token verification failures for middleware
// responses. Timeouts keep their 503 mapping; everything else that is not
// an internal fault collapses to 401 invalid_token.
func writeVerifyFailure(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsTimeout(err) || apperrors.IsCanceled(err) || apperrors.IsInternal(err):
		WriteAppError(w, err)
	default:
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "invalid_token",
			Err:     errors.New("invalid or expired token"),
		})
	}
}
