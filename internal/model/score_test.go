package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		hours  float64
		points int
		tier   ScoreTier
	}{
		{0, 0, TierInvalid},
		{4.99, 0, TierInvalid},
		{5, 1, TierEasy},
		{14.99, 1, TierEasy},
		{15, 2, TierMedium},
		{40.99, 2, TierMedium},
		{41, 3, TierHard},
		{80, 3, TierHard},
		{80.01, 4, TierVeryHard},
		{250, 4, TierVeryHard},
	}
	for _, tt := range tests {
		points, tier := Classify(tt.hours)
		assert.Equal(t, tt.points, points, "points for %v", tt.hours)
		assert.Equal(t, tt.tier, tier, "tier for %v", tt.hours)
	}
}

func TestClassify_Monotonic(t *testing.T) {
	prev := -1
	for h := 0.0; h <= 120; h += 0.25 {
		points, _ := Classify(h)
		assert.GreaterOrEqual(t, points, prev, "points decreased at %v", h)
		prev = points
	}
}

func TestClassify_NaNIsInvalid(t *testing.T) {
	points, tier := Classify(math.NaN())
	assert.Equal(t, 0, points)
	assert.Equal(t, TierInvalid, tier)
}

func TestScoreTier_PointsMatchOrder(t *testing.T) {
	for i, tier := range AllScoreTiers() {
		assert.Equal(t, i, tier.Points())
	}
}

func TestScoreTier_Label(t *testing.T) {
	assert.Equal(t, "Easy", TierEasy.Label())
	assert.Equal(t, "Very Hard", TierVeryHard.Label())
	assert.Equal(t, "Invalid", ScoreTier("bogus").Label())
}

func TestValidateHours(t *testing.T) {
	assert.NoError(t, ValidateHours(0))
	assert.NoError(t, ValidateHours(12.5))
	assert.Error(t, ValidateHours(-1))
	assert.Error(t, ValidateHours(math.NaN()))
	assert.Error(t, ValidateHours(math.Inf(1)))
}
