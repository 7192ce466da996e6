package app

import "time"

// RunSubmission is one completed game attempt as submitted by a client.
// The ghost tape travels base64-encoded; it is decoded and size-checked
// before anything touches the store.
type RunSubmission struct {
	Seed           int64   `json:"seed"`
	ShipClass      string  `json:"ship_class"`
	DoctrineID     string  `json:"doctrine_id"`
	Score          int64   `json:"score"`
	Waves          int64   `json:"waves"`
	Victory        bool    `json:"victory"`
	ShipsDestroyed int64   `json:"ships_destroyed"`
	DamageDealt    int64   `json:"damage_dealt"`
	MaxCombo       int64   `json:"max_combo"`
	TimePlayed     float64 `json:"time_played"`
	MaxHeat        float64 `json:"max_heat"`
	GhostTape      *string `json:"ghost_tape,omitempty"`
	PlayerName     string  `json:"player_name"`
}

// SubmitResult carries the stored identifier and the insert-time rank
// snapshot. The rank is never recomputed afterwards.
type SubmitResult struct {
	ID   string `json:"id"`
	Rank int64  `json:"rank"`
}

// LeaderboardEntry is one row of a leaderboard view.
type LeaderboardEntry struct {
	ID             string    `json:"id"`
	PlayerName     string    `json:"player_name"`
	Score          int64     `json:"score"`
	Waves          int64     `json:"waves"`
	Victory        bool      `json:"victory"`
	ShipClass      string    `json:"ship_class"`
	DoctrineID     string    `json:"doctrine_id"`
	ShipsDestroyed int64     `json:"ships_destroyed"`
	TimePlayed     float64   `json:"time_played"`
	MaxHeat        float64   `json:"max_heat"`
	CreatedAt      time.Time `json:"created_at"`
}

// RegattaInfo describes the current week's regatta.
type RegattaInfo struct {
	WeekKey string             `json:"week_key"`
	Seed    int64              `json:"seed"`
	EndsAt  string             `json:"ends_at"`
	TopRuns []LeaderboardEntry `json:"top_runs"`
}

// FireCreateRequest asks for a new signal fire code.
type FireCreateRequest struct {
	CreatorRun string `json:"creator_run"`
	AidType    string `json:"aid_type"`
	AidAmount  int64  `json:"aid_amount"`
}

// FireCreateResult returns the issued code.
type FireCreateResult struct {
	Code string `json:"code"`
}

// FirePayload is the aid package released by a successful redemption.
type FirePayload struct {
	AidType   string  `json:"aid_type"`
	AidAmount int64   `json:"aid_amount"`
	HeatCost  float64 `json:"heat_cost"`
}

// OmenInfo describes the current week's tide omen.
type OmenInfo struct {
	WeekKey   string         `json:"week_key"`
	OmenID    string         `json:"omen_id"`
	OmenName  string         `json:"omen_name"`
	Modifiers map[string]any `json:"modifiers"`
}

// ContributeResult acknowledges an accepted tide contribution.
type ContributeResult struct {
	Accepted bool `json:"accepted"`
}
