package httpx

import (
	"net/http"

	"github.com/aerolink/charter-ops/internal/service"
)

// CrewHandlers provides HTTP handlers for the crew roster.
type CrewHandlers struct {
	Svc *service.CrewService
}

// List handles GET /crew. Authorization is enforced by the operation
// middleware; the handler only shapes the response.
func (h *CrewHandlers) List(w http.ResponseWriter, r *http.Request) {
	crew, err := h.Svc.List(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"crew": crew})
}
