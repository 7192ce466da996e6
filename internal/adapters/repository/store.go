// Package repository defines the persistent store interface and its SQLite
// implementation. The store owns all entities; callers never cache rows
// across requests.
package repository

import (
	"context"
	"time"
)

// Store provides access to the persisted game state.
//
// The "ensure" methods are idempotent under concurrent first-of-week
// access: the insert is conditional on absence and every caller reads the
// authoritative stored value back. RedeemSignalFire is an atomic
// check-and-set; under concurrent attempts for one code at most one call
// succeeds.
type Store interface {
	// InsertRun persists a validated run.
	InsertRun(ctx context.Context, run *Run) error
	// CountRunsScoringAbove counts persisted runs with a strictly greater score.
	CountRunsScoringAbove(ctx context.Context, score int64) (int64, error)
	// TopRuns returns runs matching the filter ordered by score descending.
	TopRuns(ctx context.Context, filter RunFilter) ([]Run, error)
	// GetRun returns a run by identifier, or ErrNotFound.
	GetRun(ctx context.Context, id string) (*Run, error)

	// EnsureRegattaSeed stores seed for weekKey unless one exists, then
	// returns the stored seed.
	EnsureRegattaSeed(ctx context.Context, weekKey string, seed int64) (int64, error)

	// InsertSignalFire persists a new code, or ErrDuplicateCode.
	InsertSignalFire(ctx context.Context, fire *SignalFire) error
	// RedeemSignalFire marks the code redeemed if it is active and unexpired
	// at now. Failure kinds: ErrNotFound, ErrAlreadyRedeemed, ErrExpired.
	RedeemSignalFire(ctx context.Context, code string, now time.Time) (*SignalFire, error)

	// EnsureTideOmen stores the omen for its week unless one exists, then
	// returns the stored row.
	EnsureTideOmen(ctx context.Context, o *TideOmen) (*TideOmen, error)
	// InsertTideContribution appends one sample.
	InsertTideContribution(ctx context.Context, c *TideContribution) error

	// Close releases the underlying connection.
	Close() error
}
