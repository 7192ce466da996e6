// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bootyhunt/server/internal/app"
	"github.com/bootyhunt/server/pkg/fault"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Run ledger operations.
	SubmitRun(ctx context.Context, sub app.RunSubmission) (app.SubmitResult, error)
	Leaderboard(ctx context.Context, category string, seed *int64, limit int) ([]app.LeaderboardEntry, error)
	GhostTape(ctx context.Context, runID string) ([]byte, error)
	Regatta(ctx context.Context) (app.RegattaInfo, error)

	// Aid exchange operations.
	CreateSignalFire(ctx context.Context, req app.FireCreateRequest) (app.FireCreateResult, error)
	RedeemSignalFire(ctx context.Context, code string) (app.FirePayload, error)

	// Tide ledger operations.
	CurrentOmen(ctx context.Context) (app.OmenInfo, error)
	ContributeTide(ctx context.Context, metric string, value float64) (app.ContributeResult, error)
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = app.LeaderboardEntry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	runsHandler        *RunsHandler
	leaderboardHandler *LeaderboardHandler
	regattaHandler     *RegattaHandler
	signalFireHandler  *SignalFireHandler
	tideHandler        *TideHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		runsHandler:        NewRunsHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps),
		regattaHandler:     NewRegattaHandler(deps),
		signalFireHandler:  NewSignalFireHandler(deps),
		tideHandler:        NewTideHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/api/runs", MetricsMiddleware(s.runsHandler.HandlePostRun, "runs"))
	mux.HandleFunc("/api/runs/", MetricsMiddleware(s.runsHandler.HandleGetGhostTape, "ghost_tape"))
	mux.HandleFunc("/api/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/api/regatta", MetricsMiddleware(s.regattaHandler.HandleGetRegatta, "regatta"))
	mux.HandleFunc("/api/signal-fires", MetricsMiddleware(s.signalFireHandler.HandleCreate, "signal_fires"))
	mux.HandleFunc("/api/signal-fires/redeem", MetricsMiddleware(s.signalFireHandler.HandleRedeem, "signal_fires_redeem"))
	mux.HandleFunc("/api/tide", MetricsMiddleware(s.tideHandler.HandleGetOmen, "tide"))
	mux.HandleFunc("/api/tide/contribute", MetricsMiddleware(s.tideHandler.HandleContribute, "tide_contribute"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeFault maps a kind-tagged error onto the wire: stable machine code
// plus human-readable message.
func writeFault(w http.ResponseWriter, err error) {
	kind := fault.KindOf(err)
	writeJSON(w, statusForKind(kind), errorResponse{
		Code:    string(kind),
		Message: err.Error(),
	})
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
