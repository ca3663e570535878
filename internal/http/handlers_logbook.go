package httpx

import (
	"errors"
	"net/http"

	"github.com/aerolink/charter-ops/internal/domain/model"
	"github.com/aerolink/charter-ops/internal/service"
)

// LogbookHandlers provides HTTP handlers for the aircraft logbook.
type LogbookHandlers struct {
	Svc *service.FlightLogService
}

const maxLogbookListLimit = 200

// Create handles POST /api/logbook. The entry is attributed to the
// authenticated caller.
func (h *LogbookHandlers) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "no_token",
			Err:     errors.New("authorization token is required"),
		})
		return
	}

	var req model.CreateFlightLogRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	entry, err := h.Svc.Create(r.Context(), principal.User.ID, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, entry)
}

// List handles GET /api/logbook with pagination and optional aircraftId /
// pilotId filters.
func (h *LogbookHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxLogbookListLimit)
	opts := model.FlightLogListOptions{Limit: limit, Offset: offset}
	if v := r.URL.Query().Get("aircraftId"); v != "" {
		opts.AircraftID = &v
	}
	if v := r.URL.Query().Get("pilotId"); v != "" {
		opts.PilotID = &v
	}

	entries, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"logbook": entries,
		"limit":   limit,
		"offset":  offset,
	})
}

// GetByID handles GET /api/logbook/{id}.
func (h *LogbookHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("logbook entry id is required"),
		})
		return
	}

	entry, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, entry)
}
