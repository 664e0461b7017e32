package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prosegate/prosegate/internal/aggregator"
	"github.com/prosegate/prosegate/internal/output"
	"github.com/prosegate/prosegate/internal/review"
	"github.com/prosegate/prosegate/internal/telemetry"
)

var (
	reportPath   string
	reportDBPath string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize the decision log as a markdown report",
	Long: `Report aggregates every recorded autofix decision by category and tier
and writes a markdown summary plus the pending review queue to
.prosegate/.`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportPath, "path", "p", "", "Project directory (default: current directory)")
	reportCmd.Flags().StringVar(&reportDBPath, "db", "", "Decision log database (default: <path>/.prosegate/decisions.duckdb)")
}

func runReport(cmd *cobra.Command, args []string) error {
	projectPath, err := resolveProjectPath(reportPath)
	if err != nil {
		return err
	}

	database, err := openDecisionLog(projectPath, reportDBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	entries, err := telemetry.ReadEntries(database)
	if err != nil {
		return fmt.Errorf("failed to read decision log: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("decision log is empty; run evaluate first")
	}

	fmt.Printf("Aggregating %d decisions\n", len(entries))

	agg := aggregator.NewAggregator(aggregator.DefaultConfig())
	summary := agg.Aggregate(entries)

	queue, err := review.NewQueue(database)
	if err != nil {
		return fmt.Errorf("failed to open review queue: %w", err)
	}
	pending, err := queue.Pending()
	if err != nil {
		return fmt.Errorf("failed to list pending reviews: %w", err)
	}

	gen := output.NewGenerator(projectPath)

	reportFile, err := gen.WriteReport(summary)
	if err != nil {
		return err
	}
	queueFile, err := gen.WriteReviewQueue(pending)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote report:\n")
	fmt.Printf("  - %s\n", reportFile)
	fmt.Printf("  - %s (%d pending)\n", queueFile, len(pending))

	return nil
}
