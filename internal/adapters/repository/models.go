package repository

import (
	"time"

	"gorm.io/datatypes"
)

// Run is one completed game attempt. Rows are immutable once persisted;
// no update path exists.
type Run struct {
	ID             string `gorm:"primaryKey"`
	Seed           int64  `gorm:"index;not null"`
	ShipClass      string `gorm:"not null"`
	DoctrineID     string
	Score          int64 `gorm:"index;not null"`
	Waves          int64
	Victory        bool
	ShipsDestroyed int64
	DamageDealt    int64
	MaxCombo       int64
	TimePlayed     float64
	MaxHeat        float64
	GhostTape      []byte
	PlayerName     string `gorm:"not null"`
	WeekKey        string `gorm:"index;not null"`
	CreatedAt      time.Time
}

func (Run) TableName() string { return "runs" }

// RegattaSeed pins the deterministic seed stored for a week. First writer
// for a week wins; the stored value is authoritative afterwards.
type RegattaSeed struct {
	WeekKey string `gorm:"primaryKey"`
	Seed    int64  `gorm:"not null"`
}

func (RegattaSeed) TableName() string { return "regattas" }

// SignalFire is a single-use redeemable aid code. Expiry is a derived
// condition checked at redemption time, not a stored state.
type SignalFire struct {
	Code       string `gorm:"primaryKey"`
	CreatorRun string
	AidType    string  `gorm:"not null"`
	AidAmount  int64   `gorm:"not null"`
	HeatCost   float64 `gorm:"not null"`
	ExpiresAt  time.Time
	Redeemed   bool `gorm:"not null;default:false"`
	RedeemedAt *time.Time
	CreatedAt  time.Time
}

func (SignalFire) TableName() string { return "signal_fires" }

// TideOmen is the omen materialized for a week.
type TideOmen struct {
	WeekKey   string            `gorm:"primaryKey"`
	OmenID    string            `gorm:"not null"`
	OmenName  string            `gorm:"not null"`
	Modifiers datatypes.JSONMap `gorm:"type:json"`
}

func (TideOmen) TableName() string { return "tide_omens" }

// TideContribution is one append-only metric sample. Never read back by
// the core; aggregation is a downstream concern.
type TideContribution struct {
	ID        string `gorm:"primaryKey"`
	WeekKey   string `gorm:"index;not null"`
	Metric    string `gorm:"not null"`
	Value     float64
	CreatedAt time.Time
}

func (TideContribution) TableName() string { return "tide_contributions" }

// RunFilter scopes leaderboard reads. Zero values mean "no filter".
type RunFilter struct {
	WeekKey string
	Seed    *int64
	Limit   int
}
