package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/prosegate/prosegate/internal/aggregator"
	"github.com/prosegate/prosegate/internal/review"
)

type Generator struct {
	outputDir string
}

func NewGenerator(outputDir string) *Generator {
	return &Generator{
		outputDir: outputDir,
	}
}

// WriteReport renders the decision log summary to .prosegate/report.md.
func (g *Generator) WriteReport(summary *aggregator.Summary) (string, error) {
	dir, err := g.ensureDir()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("# Autofix Decision Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", summary.GeneratedAt.Format("2006-01-02 15:04")))
	sb.WriteString(fmt.Sprintf("**Total decisions:** %d\n", summary.Total))
	sb.WriteString(fmt.Sprintf("**Applied:** %d\n", summary.Applied))
	sb.WriteString(fmt.Sprintf("**Queued for review:** %d\n", summary.Review))
	sb.WriteString(fmt.Sprintf("**Skipped:** %d\n\n", summary.Skipped))

	if len(summary.Categories) > 0 {
		sb.WriteString("## By Category\n\n")
		sb.WriteString("| Category | Total | Applied | Review | Skipped | Apply rate | Mean confidence |\n")
		sb.WriteString("|----------|-------|---------|--------|---------|------------|----------------|\n")
		for _, cs := range summary.Categories {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %d | %.0f%% | %.2f |\n",
				cs.Category, cs.Total, cs.Applied, cs.Review, cs.Skipped,
				cs.ApplyRate*100, cs.MeanConfidence))
		}
		sb.WriteString("\n")
	}

	if len(summary.AmbiguousTerms) > 0 {
		sb.WriteString("## Ambiguous Terms\n\n")
		sb.WriteString("Terms that triggered a confidence penalty, most frequent first.\n\n")
		for _, tc := range summary.AmbiguousTerms {
			sb.WriteString(fmt.Sprintf("- `%s` (%d)\n", tc.Term, tc.Count))
		}
		sb.WriteString("\n")
	}

	filename := filepath.Join(dir, "report.md")
	if err := os.WriteFile(filename, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return filename, nil
}

// WriteReviewQueue renders pending review items to
// .prosegate/review-queue.md.
func (g *Generator) WriteReviewQueue(items []review.Item) (string, error) {
	dir, err := g.ensureDir()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("# Pending Review Queue\n\n")

	if len(items) == 0 {
		sb.WriteString("No corrections waiting for review.\n")
	}

	for i, item := range items {
		sb.WriteString(fmt.Sprintf("## %d. %s:%d\n\n", i+1, emptyFallback(item.FilePath, "(unknown file)"), item.LineNumber))
		sb.WriteString(fmt.Sprintf("- **Category:** %s\n", item.Category))
		sb.WriteString(fmt.Sprintf("- **Original:** `%s`\n", truncate(item.Original, 120)))
		if item.Suggested != "" {
			sb.WriteString(fmt.Sprintf("- **Suggested:** `%s`\n", truncate(item.Suggested, 120)))
		}
		sb.WriteString(fmt.Sprintf("- **Confidence:** %.2f\n", item.Confidence))
		if item.Ambiguity != nil {
			sb.WriteString(fmt.Sprintf("- **Ambiguity:** %s (%s)\n", item.Ambiguity.ProperForm, item.Ambiguity.Reason))
		}
		if item.SourceLine != "" {
			sb.WriteString(fmt.Sprintf("\n> %s\n", truncate(item.SourceLine, 200)))
		}
		sb.WriteString("\n")
	}

	filename := filepath.Join(dir, "review-queue.md")
	if err := os.WriteFile(filename, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write review queue: %w", err)
	}

	return filename, nil
}

func (g *Generator) ensureDir() (string, error) {
	dir := filepath.Join(g.outputDir, ".prosegate")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create .prosegate directory: %w", err)
	}
	return dir, nil
}

func emptyFallback(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
