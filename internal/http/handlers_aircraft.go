package httpx

import (
	"errors"
	"net/http"

	"github.com/aerolink/charter-ops/internal/domain/model"
	"github.com/aerolink/charter-ops/internal/service"
)

// AircraftHandlers provides HTTP handlers for the fleet registry.
type AircraftHandlers struct {
	Svc *service.AircraftService
}

const maxAircraftListLimit = 100

// Create handles POST /api/aircraft.
func (h *AircraftHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAircraftRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	aircraft, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, aircraft)
}

// List handles GET /api/aircraft with pagination.
func (h *AircraftHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxAircraftListLimit)

	aircraft, err := h.Svc.List(r.Context(), limit, offset)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"aircraft": aircraft,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetByID handles GET /api/aircraft/{id}.
func (h *AircraftHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("aircraft id is required"),
		})
		return
	}

	aircraft, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, aircraft)
}

// Update handles PUT /api/aircraft/{id}.
func (h *AircraftHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("aircraft id is required"),
		})
		return
	}

	var req model.UpdateAircraftRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	aircraft, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, aircraft)
}

// Delete handles DELETE /api/aircraft/{id}.
func (h *AircraftHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("aircraft id is required"),
		})
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
