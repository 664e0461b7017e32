package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prosegate/prosegate/internal/config"
	"github.com/prosegate/prosegate/internal/pipeline"
	"github.com/prosegate/prosegate/internal/review"
)

var (
	reviewPath   string
	reviewDBPath string
	reviewAI     bool
	reviewModel  string
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "List or adjudicate queued review items",
	Long: `Review lists the corrections the safety engine was not confident enough
to apply. With --ai, each pending item is adjudicated by an OpenRouter
model and resolved in place.`,
	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)

	reviewCmd.Flags().StringVarP(&reviewPath, "path", "p", "", "Project directory (default: current directory)")
	reviewCmd.Flags().StringVar(&reviewDBPath, "db", "", "Decision log database (default: <path>/.prosegate/decisions.duckdb)")
	reviewCmd.Flags().BoolVar(&reviewAI, "ai", false, "Adjudicate pending items with an AI reviewer")
	reviewCmd.Flags().StringVar(&reviewModel, "model", "google/gemini-3-flash-preview", "OpenRouter model to use with --ai")
}

func runReview(cmd *cobra.Command, args []string) error {
	projectPath, err := resolveProjectPath(reviewPath)
	if err != nil {
		return err
	}

	database, err := openDecisionLog(projectPath, reviewDBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	queue, err := review.NewQueue(database)
	if err != nil {
		return fmt.Errorf("failed to open review queue: %w", err)
	}

	if !reviewAI {
		return listPending(queue)
	}

	model := reviewModel
	if !cmd.Flags().Changed("model") {
		if file, loadErr := config.Load(projectPath); loadErr == nil && file.Review.Model != "" {
			model = file.Review.Model
		}
	}

	p, err := pipeline.New(queue, pipeline.Config{Model: model})
	if err != nil {
		return err
	}

	fmt.Printf("Using OpenRouter model: %s\n", model)

	stats, err := p.Process(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Adjudicated %d of %d pending items:\n", stats.Adjudicated, stats.Pending)
	fmt.Printf("  - %d apply\n", stats.Applied)
	fmt.Printf("  - %d reject\n", stats.Rejected)
	fmt.Printf("  - %d unsure\n", stats.Unsure)
	if stats.Failed > 0 {
		fmt.Printf("  - %d failed (still pending)\n", stats.Failed)
	}

	return nil
}

func listPending(queue *review.Queue) error {
	pending, err := queue.Pending()
	if err != nil {
		return fmt.Errorf("failed to list pending reviews: %w", err)
	}

	if len(pending) == 0 {
		fmt.Println("No corrections waiting for review.")
		return nil
	}

	fmt.Printf("%d corrections waiting for review:\n\n", len(pending))
	for _, item := range pending {
		fmt.Printf("%s  %s:%d\n", item.ID, item.FilePath, item.LineNumber)
		fmt.Printf("  [%s] %q -> %q (confidence %.2f)\n", item.Category, item.Original, item.Suggested, item.Confidence)
		if item.Ambiguity != nil {
			fmt.Printf("  ambiguous: %s\n", item.Ambiguity.Reason)
		}
		fmt.Println()
	}

	return nil
}
