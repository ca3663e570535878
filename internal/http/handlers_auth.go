// Package httpx provides HTTP handlers and utilities for the charter
// operations API.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aerolink/charter-ops/internal/domain/model"
	apperrors "github.com/aerolink/charter-ops/internal/errors"
	"github.com/aerolink/charter-ops/internal/service"
)

// AuthHandlers provides HTTP handlers for registration, login, token
// verification, and logout.
type AuthHandlers struct {
	Svc *service.AuthService
}

// Register handles POST /auth/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.Register(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"user":  result.User,
		"token": result.Token,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.Login(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"user":  result.User,
		"token": result.Token,
	})
}

// verifyRequest is the legacy body shape accepted by POST /auth/verify.
type verifyRequest struct {
	Token string `json:"token"`
}

// Verify handles POST /auth/verify. The token is read from the
// Authorization header; a body `token` field is accepted as a fallback for
// legacy clients.
func (h *AuthHandlers) Verify(w http.ResponseWriter, r *http.Request) {
	token := BearerToken(r)
	if token == "" {
		var req verifyRequest
		// Body decode failures are not fatal here: an empty or non-JSON
		// body just means no fallback token was supplied.
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req)
		}
		token = req.Token
	}
	if token == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "no_token",
			Err:     errors.New("authorization token is required"),
		})
		return
	}

	user, _, err := h.Svc.VerifySession(r.Context(), token)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			WriteError(w, ErrorParams{
				Code:    http.StatusUnauthorized,
				ErrCode: "invalid_token",
				Err:     err,
			})
			return
		}
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"user": user})
}

// Logout handles POST /auth/logout: the presented token is revoked for its
// remaining lifetime.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	token := BearerToken(r)
	if token == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "no_token",
			Err:     errors.New("authorization token is required"),
		})
		return
	}

	if err := h.Svc.Logout(r.Context(), token); err != nil {
		if apperrors.IsUnauthorized(err) {
			WriteError(w, ErrorParams{
				Code:    http.StatusUnauthorized,
				ErrCode: "invalid_token",
				Err:     err,
			})
			return
		}
		WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UserByID handles GET /auth/user?id=.
func (h *AuthHandlers) UserByID(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	user, err := h.Svc.GetUser(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"user": user})
}

// RolesByUserID handles GET /auth/roles?userId=. A user with no role
// assignments gets an empty list, not an error.
func (h *AuthHandlers) RolesByUserID(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")

	roles, err := h.Svc.RolesOf(r.Context(), userID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"roles": roles})
}
