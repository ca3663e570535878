package httpx

import (
	"errors"
	"net/http"

	"github.com/aerolink/charter-ops/internal/domain/model"
	"github.com/aerolink/charter-ops/internal/service"
)

// ExpenseHandlers provides HTTP handlers for expense reports and
// reconciliation summaries.
type ExpenseHandlers struct {
	Svc *service.ExpenseService
}

const maxExpenseListLimit = 200

// Create handles POST /api/expenses. The report is attributed to the
// authenticated caller.
func (h *ExpenseHandlers) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "no_token",
			Err:     errors.New("authorization token is required"),
		})
		return
	}

	var req model.CreateExpenseRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	expense, err := h.Svc.Create(r.Context(), principal.User.ID, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, expense)
}

// List handles GET /api/expenses with pagination and optional clientId /
// status filters.
func (h *ExpenseHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxExpenseListLimit)
	opts := model.ExpenseListOptions{Limit: limit, Offset: offset}
	if v := r.URL.Query().Get("clientId"); v != "" {
		opts.ClientID = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := model.ExpenseStatus(v)
		if !status.Valid() {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "validation",
				Err:     errors.New("status is not a recognized expense status"),
			})
			return
		}
		opts.Status = &status
	}

	expenses, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"expenses": expenses,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetByID handles GET /api/expenses/{id}.
func (h *ExpenseHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("expense id is required"),
		})
		return
	}

	expense, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, expense)
}

// Update handles PUT /api/expenses/{id}.
func (h *ExpenseHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("expense id is required"),
		})
		return
	}

	var req model.UpdateExpenseRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	expense, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, expense)
}

// Delete handles DELETE /api/expenses/{id}.
func (h *ExpenseHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("expense id is required"),
		})
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reconcile handles GET /api/reconciliation?clientId=.
func (h *ExpenseHandlers) Reconcile(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("clientId")

	summary, err := h.Svc.Reconcile(r.Context(), clientID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, summary)
}
