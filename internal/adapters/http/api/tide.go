package api

import (
	"encoding/json"
	"net/http"
)

// TideHandler handles tide omen fetches and contributions.
type TideHandler struct {
	deps Dependencies
}

// NewTideHandler creates a new tide handler.
func NewTideHandler(deps Dependencies) *TideHandler {
	return &TideHandler{deps: deps}
}

// HandleGetOmen handles GET /api/tide requests.
func (h *TideHandler) HandleGetOmen(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	info, err := h.deps.CurrentOmen(r.Context())
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

type contributionRequest struct {
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
}

// HandleContribute handles POST /api/tide/contribute requests.
func (h *TideHandler) HandleContribute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req contributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	res, err := h.deps.ContributeTide(r.Context(), req.Metric, req.Value)
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
