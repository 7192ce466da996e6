package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bootyhunt/server/internal/app"
)

// RunsHandler handles run submission and ghost tape fetches.
type RunsHandler struct {
	deps Dependencies
}

// NewRunsHandler creates a new runs handler.
func NewRunsHandler(deps Dependencies) *RunsHandler {
	return &RunsHandler{deps: deps}
}

// HandlePostRun handles POST /api/runs requests.
func (h *RunsHandler) HandlePostRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var sub app.RunSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	res, err := h.deps.SubmitRun(r.Context(), sub)
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleGetGhostTape handles GET /api/runs/{run_id}/ghost requests and
// streams the raw tape bytes.
func (h *RunsHandler) HandleGetGhostTape(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameters after /api/runs/
	rest := strings.TrimPrefix(r.URL.Path, "/api/runs/")
	runID, tail, found := strings.Cut(rest, "/")
	if !found || runID == "" || tail != "ghost" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	tape, err := h.deps.GhostTape(r.Context(), runID)
	if err != nil {
		writeFault(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(tape)
}
