package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bootyhunt/server/internal/app"
)

// SignalFireHandler handles signal fire creation and redemption.
type SignalFireHandler struct {
	deps Dependencies
}

// NewSignalFireHandler creates a new signal fire handler.
func NewSignalFireHandler(deps Dependencies) *SignalFireHandler {
	return &SignalFireHandler{deps: deps}
}

// HandleCreate handles POST /api/signal-fires requests.
func (h *SignalFireHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req app.FireCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	res, err := h.deps.CreateSignalFire(r.Context(), req)
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type redeemRequest struct {
	Code string `json:"code"`
}

// HandleRedeem handles POST /api/signal-fires/redeem requests.
func (h *SignalFireHandler) HandleRedeem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	payload, err := h.deps.RedeemSignalFire(r.Context(), req.Code)
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}
