package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/prosegate/prosegate/internal/config"
	"github.com/prosegate/prosegate/internal/db"
	"github.com/prosegate/prosegate/internal/parser"
	"github.com/prosegate/prosegate/internal/review"
	"github.com/prosegate/prosegate/internal/safety"
	"github.com/prosegate/prosegate/internal/telemetry"
)

var (
	evaluateCandidates string
	evaluatePath       string
	evaluateDBPath     string
	evaluateLogPath    string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate correction candidates against the safety engine",
	Long: `Evaluate reads correction candidates emitted by detection rules (one JSON
record per line), scores each one, records every decision in the decision
log, and queues uncertain corrections for review.`,
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVarP(&evaluateCandidates, "candidates", "c", "", "Glob of candidate JSONL files (required)")
	evaluateCmd.Flags().StringVarP(&evaluatePath, "path", "p", "", "Project directory (default: current directory)")
	evaluateCmd.Flags().StringVar(&evaluateDBPath, "db", "", "Decision log database (default: <path>/.prosegate/decisions.duckdb)")
	evaluateCmd.Flags().StringVar(&evaluateLogPath, "log", "", "Optional JSONL telemetry log to append to")
	evaluateCmd.MarkFlagRequired("candidates")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	projectPath, err := resolveProjectPath(evaluatePath)
	if err != nil {
		return err
	}

	file, cfg, cfgErrs := loadConfig(projectPath)
	for _, fieldErr := range cfgErrs {
		fmt.Printf("config warning: %s\n", fieldErr.Error())
	}

	dbPath := evaluateDBPath
	if dbPath == "" && file != nil && file.Telemetry.Path != "" {
		dbPath = file.Telemetry.Path
	}

	database, err := openDecisionLog(projectPath, dbPath)
	if err != nil {
		return err
	}
	defer database.Close()

	dbSink, err := telemetry.NewDBSink(database)
	if err != nil {
		return fmt.Errorf("failed to create telemetry sink: %w", err)
	}

	sinks := telemetry.Multi{dbSink}
	if evaluateLogPath != "" {
		fileSink, err := telemetry.NewFileSink(evaluateLogPath)
		if err != nil {
			return fmt.Errorf("failed to create telemetry log: %w", err)
		}
		defer fileSink.Close()
		sinks = append(sinks, fileSink)
	}

	queue, err := review.NewQueue(database)
	if err != nil {
		return fmt.Errorf("failed to create review queue: %w", err)
	}

	p := parser.NewParser(database)

	count, documents, err := p.Stats(evaluateCandidates)
	if err != nil {
		return fmt.Errorf("failed to get candidate stats: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("no candidates found for glob: %s", evaluateCandidates)
	}
	fmt.Printf("Found %d candidates across %d documents\n", count, documents)

	candidates, err := p.FetchCandidates(evaluateCandidates)
	if err != nil {
		return fmt.Errorf("failed to fetch candidates: %w", err)
	}

	counts := &tierCounts{}
	sinks = append(sinks, counts)

	for _, cand := range candidates {
		safety.BuildFix(cand, cfg, cand.Proposed, sinks, queue)
	}

	fmt.Printf("Evaluated %d candidates:\n", len(candidates))
	fmt.Printf("  - %d applied\n", counts.applied)
	fmt.Printf("  - %d queued for review\n", counts.review)
	fmt.Printf("  - %d skipped\n", counts.skipped)

	if dropped := dbSink.Dropped() + queue.Dropped(); dropped > 0 {
		fmt.Printf("  - %d records dropped by sinks\n", dropped)
	}

	return nil
}

func loadConfig(projectPath string) (*config.File, safety.Config, []config.FieldError) {
	file, err := config.Load(projectPath)
	if err != nil {
		fmt.Printf("config warning: %v, using defaults\n", err)
		return nil, safety.DefaultConfig(), nil
	}
	cfg, errs := config.Resolve(file)
	return file, cfg, errs
}

// tierCounts is a telemetry sink that tallies decisions for the run
// summary.
type tierCounts struct {
	applied int
	review  int
	skipped int
}

func (c *tierCounts) Record(entry safety.TelemetryEntry) {
	switch entry.Tier {
	case safety.TierApply:
		c.applied++
	case safety.TierReview:
		c.review++
	default:
		c.skipped++
	}
}

func openDecisionLog(projectPath, dbPath string) (*sql.DB, error) {
	path := dbPath
	if path == "" {
		dir := filepath.Join(projectPath, ".prosegate")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create .prosegate directory: %w", err)
		}
		path = filepath.Join(dir, "decisions.duckdb")
	}
	return db.Open(path)
}

func resolveProjectPath(path string) (string, error) {
	if path == "" {
		return os.Getwd()
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("path does not exist: %w", err)
	}

	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", absPath)
	}

	return absPath, nil
}
