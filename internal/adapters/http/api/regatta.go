package api

import (
	"net/http"
)

// RegattaHandler handles regatta info requests.
type RegattaHandler struct {
	deps Dependencies
}

// NewRegattaHandler creates a new regatta handler.
func NewRegattaHandler(deps Dependencies) *RegattaHandler {
	return &RegattaHandler{deps: deps}
}

// HandleGetRegatta handles GET /api/regatta requests.
func (h *RegattaHandler) HandleGetRegatta(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	info, err := h.deps.Regatta(r.Context())
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
