package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "prosegate",
	Short: "Autofix safety engine for markdown style corrections",
	Long: `prosegate decides, for each correction a style rule proposes, whether it
is safe to apply automatically, should be queued for review, or should be
discarded.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
}
