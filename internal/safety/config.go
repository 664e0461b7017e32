package safety

// Config is the validated safety configuration. It is constructed once per
// lint run and read-only afterwards.
type Config struct {
	// Enabled turns the safety engine on. When false every candidate is
	// applied unchecked.
	Enabled bool

	// AutoFixThreshold is the minimum confidence for automatic application.
	AutoFixThreshold float64

	// ReviewThreshold is the minimum confidence for queueing a review;
	// anything below it is discarded. Must not exceed AutoFixThreshold.
	ReviewThreshold float64

	// AlwaysReview lists terms whose presence forces the review tier.
	AlwaysReview []string

	// NeverFlag lists terms whose presence discards the candidate outright.
	// NeverFlag wins over AlwaysReview.
	NeverFlag []string

	// Weights overrides the heuristic constants. Zero value means defaults.
	Weights *Weights
}

const (
	DefaultAutoFixThreshold = 0.7
	DefaultReviewThreshold  = 0.3
)

func DefaultConfig() Config {
	return Config{
		Enabled:          true,
		AutoFixThreshold: DefaultAutoFixThreshold,
		ReviewThreshold:  DefaultReviewThreshold,
	}
}

func (c Config) weights() Weights {
	if c.Weights != nil {
		return *c.Weights
	}
	return DefaultWeights()
}
