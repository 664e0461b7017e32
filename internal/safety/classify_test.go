package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTier(t *testing.T) {
	tests := []struct {
		confidence float64
		want       Tier
	}{
		{1.0, TierApply},
		{0.7, TierApply},
		{0.6999, TierReview},
		{0.3, TierReview},
		{0.2999, TierSkip},
		{0.0, TierSkip},
	}

	for _, tt := range tests {
		got := classifyTier(tt.confidence, 0.7, 0.3)
		assert.Equal(t, tt.want, got, "confidence %v", tt.confidence)
	}
}

func TestClassifyTierEqualThresholds(t *testing.T) {
	// When both thresholds coincide there is no review band.
	assert.Equal(t, TierApply, classifyTier(0.5, 0.5, 0.5))
	assert.Equal(t, TierSkip, classifyTier(0.4999, 0.5, 0.5))
}
