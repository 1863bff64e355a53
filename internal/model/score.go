package model

import (
	"math"

	"github.com/rotisserie/eris"
)

// ScoreTier is the difficulty bucket a completion time falls into.
type ScoreTier string

const (
	TierInvalid  ScoreTier = "invalid"
	TierEasy     ScoreTier = "easy"
	TierMedium   ScoreTier = "medium"
	TierHard     ScoreTier = "hard"
	TierVeryHard ScoreTier = "very_hard"
)

// Tier boundaries in hours.
const (
	MinValidHours  = 5.0
	MediumMinHours = 15.0
	HardMinHours   = 41.0
	HardMaxHours   = 80.0
)

// AllScoreTiers returns every tier in ascending point order.
func AllScoreTiers() []ScoreTier {
	return []ScoreTier{TierInvalid, TierEasy, TierMedium, TierHard, TierVeryHard}
}

// Points returns the league points awarded for the tier.
func (t ScoreTier) Points() int {
	switch t {
	case TierEasy:
		return 1
	case TierMedium:
		return 2
	case TierHard:
		return 3
	case TierVeryHard:
		return 4
	default:
		return 0
	}
}

// Label returns the display category stored with game records.
func (t ScoreTier) Label() string {
	switch t {
	case TierEasy:
		return "Easy"
	case TierMedium:
		return "Medium"
	case TierHard:
		return "Hard"
	case TierVeryHard:
		return "Very Hard"
	default:
		return "Invalid"
	}
}

// Classify maps a completion time to its points and tier.
//
//	hours < 5        -> 0, invalid
//	5 <= hours < 15  -> 1, easy
//	15 <= hours < 41 -> 2, medium
//	41 <= hours <= 80 -> 3, hard
//	hours > 80       -> 4, very hard
//
// Callers validate the input with ValidateHours first; NaN falls through to
// invalid.
func Classify(hours float64) (int, ScoreTier) {
	var tier ScoreTier
	switch {
	case !(hours >= MinValidHours):
		tier = TierInvalid
	case hours < MediumMinHours:
		tier = TierEasy
	case hours < HardMinHours:
		tier = TierMedium
	case hours <= HardMaxHours:
		tier = TierHard
	default:
		tier = TierVeryHard
	}
	return tier.Points(), tier
}

// ValidateHours rejects values Classify should never see.
func ValidateHours(hours float64) error {
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return eris.Errorf("hours must be finite, got %v", hours)
	}
	if hours < 0 {
		return eris.Errorf("hours must not be negative, got %v", hours)
	}
	return nil
}
