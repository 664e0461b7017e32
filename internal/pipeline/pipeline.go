// Package pipeline drains the review queue through an AI adjudicator and
// writes the verdicts back as resolutions.
package pipeline

import (
	"context"
	"fmt"

	"github.com/prosegate/prosegate/internal/ai"
	"github.com/prosegate/prosegate/internal/review"
)

// Adjudicator produces a verdict for one queued review item.
type Adjudicator interface {
	Adjudicate(ctx context.Context, item review.Item) (*ai.Verdict, error)
}

type Pipeline struct {
	queue       *review.Queue
	adjudicator Adjudicator
}

type Config struct {
	Model       string
	Temperature float64
}

func New(queue *review.Queue, cfg Config) (*Pipeline, error) {
	reviewer, err := ai.NewReviewer(ai.Config{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create reviewer: %w", err)
	}

	return &Pipeline{
		queue:       queue,
		adjudicator: reviewer,
	}, nil
}

// NewWithAdjudicator wires a custom adjudicator, used by tests.
func NewWithAdjudicator(queue *review.Queue, adjudicator Adjudicator) *Pipeline {
	return &Pipeline{
		queue:       queue,
		adjudicator: adjudicator,
	}
}

type Stats struct {
	Pending     int
	Adjudicated int
	Applied     int
	Rejected    int
	Unsure      int
	Failed      int
}

// Process adjudicates every pending item. A failed adjudication leaves the
// item pending for the next run; it never aborts the batch.
func (p *Pipeline) Process(ctx context.Context) (Stats, error) {
	var stats Stats

	items, err := p.queue.Pending()
	if err != nil {
		return stats, fmt.Errorf("failed to list pending items: %w", err)
	}
	stats.Pending = len(items)

	for _, item := range items {
		verdict, err := p.adjudicator.Adjudicate(ctx, item)
		if err != nil {
			stats.Failed++
			continue
		}

		status := verdictStatus(verdict.Decision)
		if err := p.queue.Resolve(item.ID, status, verdict.Rationale); err != nil {
			stats.Failed++
			continue
		}

		stats.Adjudicated++
		switch status {
		case review.StatusApplied:
			stats.Applied++
		case review.StatusRejected:
			stats.Rejected++
		case review.StatusUnsure:
			stats.Unsure++
		}
	}

	return stats, nil
}

func verdictStatus(decision string) string {
	switch decision {
	case "apply":
		return review.StatusApplied
	case "reject":
		return review.StatusRejected
	default:
		return review.StatusUnsure
	}
}
