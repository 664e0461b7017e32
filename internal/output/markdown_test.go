package output

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prosegate/prosegate/internal/aggregator"
	"github.com/prosegate/prosegate/internal/review"
	"github.com/prosegate/prosegate/internal/safety"
)

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	gen := NewGenerator(dir)

	summary := &aggregator.Summary{
		GeneratedAt: time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC),
		Total:       5,
		Applied:     3,
		Review:      1,
		Skipped:     1,
		Categories: []aggregator.CategorySummary{
			{
				Category:       safety.CategoryTokenWrap,
				Total:          4,
				Applied:        2,
				Review:         1,
				Skipped:        1,
				ApplyRate:      0.5,
				MeanConfidence: 0.575,
			},
		},
		AmbiguousTerms: []aggregator.TermCount{
			{Term: "rust", Count: 2},
		},
	}

	path, err := gen.WriteReport(summary)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".prosegate", "report.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	report := string(data)

	assert.Contains(t, report, "# Autofix Decision Report")
	assert.Contains(t, report, "**Total decisions:** 5")
	assert.Contains(t, report, "| token-wrap | 4 | 2 | 1 | 1 | 50% | 0.57 |")
	assert.Contains(t, report, "- `rust` (2)")
}

func TestWriteReportEmptySummary(t *testing.T) {
	gen := NewGenerator(t.TempDir())

	path, err := gen.WriteReport(&aggregator.Summary{})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	report := string(data)
	assert.Contains(t, report, "**Total decisions:** 0")
	assert.NotContains(t, report, "## By Category")
	assert.NotContains(t, report, "## Ambiguous Terms")
}

func TestWriteReviewQueue(t *testing.T) {
	gen := NewGenerator(t.TempDir())

	items := []review.Item{
		{
			ID:     "a1",
			Status: review.StatusPending,
			ReviewItem: safety.ReviewItem{
				Category:   safety.CategoryTokenWrap,
				Original:   "rust",
				Suggested:  "`rust`",
				Confidence: 0.3,
				SourceLine: "rust keeps forming on the hinges",
				FilePath:   "docs/maintenance.md",
				LineNumber: 12,
				Ambiguity: &safety.AmbiguityInfo{
					Term:       "rust",
					ProperForm: "Rust",
					Reason:     "programming language vs iron oxide",
				},
			},
		},
		{
			ID:     "b2",
			Status: review.StatusPending,
			ReviewItem: safety.ReviewItem{
				Category:   safety.CategoryCaseNormalize,
				Original:   "hello there",
				Confidence: 0.5,
			},
		},
	}

	path, err := gen.WriteReviewQueue(items)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	queue := string(data)

	assert.Contains(t, queue, "## 1. docs/maintenance.md:12")
	assert.Contains(t, queue, "- **Suggested:** ``rust``")
	assert.Contains(t, queue, "- **Ambiguity:** Rust (programming language vs iron oxide)")
	assert.Contains(t, queue, "> rust keeps forming on the hinges")

	// Item without context falls back to a placeholder heading.
	assert.Contains(t, queue, "## 2. (unknown file):0")
}

func TestWriteReviewQueueEmpty(t *testing.T) {
	gen := NewGenerator(t.TempDir())

	path, err := gen.WriteReviewQueue(nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "No corrections waiting for review.")
}
