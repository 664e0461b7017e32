package ai

import "time"

type Config struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}
