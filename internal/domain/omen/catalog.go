// Package omen holds the fixed catalog of weekly tide omens and the
// deterministic pick for a week key.
//
// Catalog order is part of the wire contract: a week's omen is selected by
// positional index, so entries may be appended but never reordered or
// removed without a migration policy for historical weeks.
package omen

import (
	"github.com/bootyhunt/server/internal/domain/rotation"
	"gorm.io/datatypes"
)

// Omen is one entry of the weekly modifier catalog.
type Omen struct {
	ID        string
	Name      string
	Modifiers datatypes.JSONMap
}

// catalog is append-only. Do not reorder.
var catalog = []Omen{
	{ID: "red_tide", Name: "Red Tide", Modifiers: datatypes.JSONMap{
		"armed_percent_bonus": 0.10,
		"speed_multiplier":    1.05,
	}},
	{ID: "dead_calm", Name: "Dead Calm", Modifiers: datatypes.JSONMap{
		"speed_multiplier": 0.85,
		"gold_multiplier":  1.15,
	}},
	{ID: "storm_season", Name: "Storm Season", Modifiers: datatypes.JSONMap{
		"force_weather":     "stormy",
		"damage_multiplier": 1.10,
	}},
	{ID: "ghost_moon", Name: "Ghost Moon", Modifiers: datatypes.JSONMap{
		"force_weather": "night",
		"ghost_chance":  0.20,
	}},
	{ID: "golden_current", Name: "Golden Current", Modifiers: datatypes.JSONMap{
		"gold_multiplier":   1.25,
		"health_multiplier": 0.90,
	}},
	{ID: "fog_bank", Name: "Fog Bank", Modifiers: datatypes.JSONMap{
		"force_weather":     "foggy",
		"vision_multiplier": 0.70,
	}},
	{ID: "fair_winds", Name: "Fair Winds", Modifiers: datatypes.JSONMap{
		"speed_multiplier":  1.10,
		"health_multiplier": 1.05,
	}},
}

// Count returns the catalog size.
func Count() int { return len(catalog) }

// ForWeek picks the week's omen deterministically from the catalog.
func ForWeek(weekKey string) Omen {
	return catalog[rotation.Index(weekKey, rotation.TagTide, len(catalog))]
}

// ByID looks an omen up by identifier.
func ByID(id string) (Omen, bool) {
	for _, o := range catalog {
		if o.ID == id {
			return o, true
		}
	}
	return Omen{}, false
}
