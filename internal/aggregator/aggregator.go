package aggregator

import (
	"sort"
	"time"

	"github.com/prosegate/prosegate/internal/safety"
)

type Config struct {
	// TopTermCount limits how many ambiguous terms the summary reports.
	TopTermCount int
	// MinCount drops categories with fewer decisions from the summary.
	MinCount int
}

func DefaultConfig() Config {
	return Config{
		TopTermCount: 10,
		MinCount:     1,
	}
}

// CategorySummary aggregates the decisions of one correction category.
type CategorySummary struct {
	Category       safety.Category
	Total          int
	Applied        int
	Review         int
	Skipped        int
	ApplyRate      float64
	MeanConfidence float64
}

// TermCount is one ambiguous term and how often it penalized a decision.
type TermCount struct {
	Term  string
	Count int
}

// Summary is the aggregated view of a decision log.
type Summary struct {
	GeneratedAt    time.Time
	Total          int
	Applied        int
	Review         int
	Skipped        int
	Categories     []CategorySummary
	AmbiguousTerms []TermCount
}

type Aggregator struct {
	config Config
	now    time.Time
}

func NewAggregator(cfg Config) *Aggregator {
	return &Aggregator{
		config: cfg,
		now:    time.Now(),
	}
}

// Aggregate groups telemetry entries by category, counts tiers, and ranks
// the ambiguous terms that triggered penalties.
func (a *Aggregator) Aggregate(entries []safety.TelemetryEntry) *Summary {
	summary := &Summary{
		GeneratedAt: a.now,
		Total:       len(entries),
	}

	byCategory := make(map[safety.Category][]safety.TelemetryEntry)
	termCounts := make(map[string]int)

	for _, entry := range entries {
		byCategory[entry.Category] = append(byCategory[entry.Category], entry)

		switch entry.Tier {
		case safety.TierApply:
			summary.Applied++
		case safety.TierReview:
			summary.Review++
		case safety.TierSkip:
			summary.Skipped++
		}

		if entry.Ambiguity != nil {
			termCounts[entry.Ambiguity.Term]++
		}
	}

	for category, group := range byCategory {
		if len(group) < a.config.MinCount {
			continue
		}
		summary.Categories = append(summary.Categories, a.summarizeCategory(category, group))
	}

	sort.Slice(summary.Categories, func(i, j int) bool {
		if summary.Categories[i].Total != summary.Categories[j].Total {
			return summary.Categories[i].Total > summary.Categories[j].Total
		}
		return summary.Categories[i].Category < summary.Categories[j].Category
	})

	summary.AmbiguousTerms = topTerms(termCounts, a.config.TopTermCount)

	return summary
}

func (a *Aggregator) summarizeCategory(category safety.Category, group []safety.TelemetryEntry) CategorySummary {
	cs := CategorySummary{
		Category: category,
		Total:    len(group),
	}

	var confidenceSum float64
	for _, entry := range group {
		confidenceSum += entry.Confidence
		switch entry.Tier {
		case safety.TierApply:
			cs.Applied++
		case safety.TierReview:
			cs.Review++
		case safety.TierSkip:
			cs.Skipped++
		}
	}

	cs.ApplyRate = float64(cs.Applied) / float64(cs.Total)
	cs.MeanConfidence = confidenceSum / float64(cs.Total)

	return cs
}

func topTerms(counts map[string]int, limit int) []TermCount {
	terms := make([]TermCount, 0, len(counts))
	for term, count := range counts {
		terms = append(terms, TermCount{Term: term, Count: count})
	}

	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Term < terms[j].Term
	})

	if limit > 0 && len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}
