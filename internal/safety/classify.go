package safety

// classifyTier maps a confidence score to a decision tier using the two
// configured thresholds. Thresholds are taken verbatim from config.
func classifyTier(confidence, autoFixThreshold, reviewThreshold float64) Tier {
	switch {
	case confidence >= autoFixThreshold:
		return TierApply
	case confidence >= reviewThreshold:
		return TierReview
	default:
		return TierSkip
	}
}
