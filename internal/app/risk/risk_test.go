package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTiers(t *testing.T) {
	cases := []struct {
		p              float64
		tier           Tier
		classification Classification
	}{
		{0.0, VeryLow, LowRisk},
		{0.1, VeryLow, LowRisk},
		{0.19999, VeryLow, LowRisk},
		{0.2, Low, LowRisk}, // lower bound inclusive
		{0.35, Low, LowRisk},
		{0.4, Moderate, HighRisk},
		{0.5, Moderate, HighRisk},
		{0.6, High, HighRisk},
		{0.73, High, HighRisk},
		{0.8, VeryHigh, HighRisk},
		{0.95, VeryHigh, HighRisk},
		{1.0, VeryHigh, HighRisk},
	}

	for _, c := range cases {
		a, err := Classify(c.p)
		require.NoError(t, err, "p=%v", c.p)
		assert.Equal(t, c.tier, a.Tier, "p=%v", c.p)
		assert.Equal(t, c.classification, a.Classification, "p=%v", c.p)
		assert.Equal(t, c.p, a.Probability, "p=%v", c.p)
		assert.Equal(t, c.tier.String(), a.RiskLevel, "p=%v", c.p)
	}
}

func TestClassifyOutOfRange(t *testing.T) {
	_, err := Classify(-0.01)
	assert.ErrorIs(t, err, ErrProbabilityRange)

	_, err = Classify(1.01)
	assert.ErrorIs(t, err, ErrProbabilityRange)
}

func TestClassifyDeterministic(t *testing.T) {
	first, err := Classify(0.73)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Classify(0.73)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestClassifyRecommendationPerTier(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
		a, err := Classify(p)
		require.NoError(t, err)
		require.NotEmpty(t, a.Recommendation)
		seen[a.Recommendation] = true
	}
	// five tiers, five distinct messages
	assert.Len(t, seen, 5)

	high, err := Classify(0.73)
	require.NoError(t, err)
	assert.Equal(t, recommendations[High], high.Recommendation)
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "Very Low", VeryLow.String())
	assert.Equal(t, "Very High", VeryHigh.String())
	assert.Equal(t, "Unknown", Tier(42).String())
}
