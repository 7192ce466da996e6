// Package rules holds the submission and exchange validation rules: fixed
// catalogs, bounds, and input normalization. All checks run before any
// store access so invalid input never causes a partial write.
package rules

import (
	"strings"

	"github.com/bootyhunt/server/pkg/fault"
)

// Bounds and defaults.
const (
	MaxPlayerNameLen  = 32
	DefaultPlayerName = "Anonymous"

	// MaxGhostTapeBytes bounds the decoded replay payload.
	MaxGhostTapeBytes = 512 * 1024

	MinAidAmount = 1
	MaxAidAmount = 100
)

// Leaderboard categories. Anything else falls through to the unfiltered
// global view.
const (
	CategoryGlobal = "global"
	CategoryWeekly = "weekly"
	CategorySeed   = "seed"
)

var shipClasses = []string{"sloop", "brigantine", "galleon"}

var aidTypes = []string{"supplies", "intel", "rep"}

// ValidateShipClass checks class against the fixed ship catalog.
func ValidateShipClass(class string) error {
	for _, c := range shipClasses {
		if c == class {
			return nil
		}
	}
	return fault.Validationf("invalid ship class: %s", class)
}

// ValidateScore rejects negative scores.
func ValidateScore(score int64) error {
	if score < 0 {
		return fault.Validationf("score cannot be negative")
	}
	return nil
}

// NormalizePlayerName trims the name, substitutes the default when empty,
// and truncates to MaxPlayerNameLen runes.
func NormalizePlayerName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return DefaultPlayerName
	}
	runes := []rune(trimmed)
	if len(runes) > MaxPlayerNameLen {
		return string(runes[:MaxPlayerNameLen])
	}
	return trimmed
}

// ValidateGhostTape bounds the decoded replay payload size.
func ValidateGhostTape(tape []byte) error {
	if len(tape) > MaxGhostTapeBytes {
		return fault.Validationf("ghost tape too large")
	}
	return nil
}

// ValidateAidType checks aidType against the fixed aid catalog.
func ValidateAidType(aidType string) error {
	for _, t := range aidTypes {
		if t == aidType {
			return nil
		}
	}
	return fault.Validationf("invalid aid type: %s", aidType)
}

// ValidateAidAmount bounds the aid amount.
func ValidateAidAmount(amount int64) error {
	if amount < MinAidAmount || amount > MaxAidAmount {
		return fault.Validationf("aid amount must be %d-%d", MinAidAmount, MaxAidAmount)
	}
	return nil
}

// NormalizeCode canonicalizes a redemption code for lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
