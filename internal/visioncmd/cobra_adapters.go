package visioncmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/storefront-insights/captain/internal/vision"
)

// NewAnalyzeCmd creates the analyze command for scoring the current screenshot batch
func NewAnalyzeCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score the current batch of deployment screenshots",
		Long: `Score every screenshot in the current deployment batch with a vision-capable LLM.

The current batch is the folder named by the "latest" pointer inside the
screenshots directory. Each screen is rated against the storefront rubric and
the results are aggregated into a scorecard saved as YAML and JSON.

After a successful pass, superseded deployment-* batches are deleted unless
--keep-batches is set.`,
		Example: `  # Analyze with Gemini (GEMINI_API_KEY must be set)
  captain vision analyze --screenshots ./screenshots

  # Use a local Ollama model and record score history
  captain vision analyze --provider ollama --history ./results/history.parquet

  # Upload the scorecard to S3-compatible storage (MINIO_* variables)
  captain vision analyze --publish`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(opts.screenshotsDir); os.IsNotExist(err) {
				return fmt.Errorf("screenshots directory not found: %s", opts.screenshotsDir)
			}

			return executeAnalyze(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.screenshotsDir, "screenshots", "screenshots", "Screenshots directory containing deployment batches")
	cmd.Flags().StringVar(&opts.goalsPath, "goals", os.Getenv("CAPTAIN_GOALS"), "Path to project goals YAML file")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "Vision provider (gemini, openai, or ollama; defaults to VISION_PROVIDER or gemini)")
	cmd.Flags().StringVar(&opts.model, "model", "", "Model name (defaults to provider's default)")
	cmd.Flags().StringVar(&opts.outputDir, "output", "results", "Output directory for scorecard files")
	cmd.Flags().StringVar(&opts.historyPath, "history", "", "Parquet file to append score history to")
	cmd.Flags().BoolVar(&opts.publish, "publish", false, "Upload saved scorecards to MinIO/S3")
	cmd.Flags().BoolVar(&opts.keepBatches, "keep-batches", false, "Do not delete superseded batches")
	cmd.Flags().Float64Var(&opts.temperature, "temperature", vision.DefaultTemperature, "Sampling temperature")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Verbose logging")

	return cmd
}

// NewPromptCmd creates the prompt command for printing the request sent for a screen
func NewPromptCmd() *cobra.Command {
	var screen string
	var goalsPath string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the analysis prompt for a screen",
		Example: `  captain vision prompt --screen homepage_mobile --goals goals.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executePrompt(cmd.OutOrStdout(), screen, goalsPath)
		},
	}

	cmd.Flags().StringVar(&screen, "screen", "", "Screen name (required)")
	cmd.Flags().StringVar(&goalsPath, "goals", os.Getenv("CAPTAIN_GOALS"), "Path to project goals YAML file")
	_ = cmd.MarkFlagRequired("screen")

	return cmd
}

// NewParseCmd creates the parse command for re-parsing a saved model reply
func NewParseCmd() *cobra.Command {
	var screen string
	var format string

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a saved model reply into a screen analysis",
		Example: `  captain vision parse --screen homepage reply.txt
  captain vision parse --screen homepage --format json reply.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeParse(cmd.OutOrStdout(), screen, args[0], format)
		},
	}

	cmd.Flags().StringVar(&screen, "screen", "", "Screen name (required)")
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format (yaml or json)")
	_ = cmd.MarkFlagRequired("screen")

	return cmd
}

// NewBatchesListCmd creates the list command for showing deployment batches
func NewBatchesListCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deployment batches, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeBatchesList(cmd.OutOrStdout(), dir)
		},
	}

	cmd.Flags().StringVar(&dir, "screenshots", "screenshots", "Screenshots directory containing deployment batches")
	return cmd
}

// NewBatchesCleanupCmd creates the cleanup command for deleting superseded batches
func NewBatchesCleanupCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete every deployment batch except the current one",
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeBatchesCleanup(cmd.OutOrStdout(), dir)
		},
	}

	cmd.Flags().StringVar(&dir, "screenshots", "screenshots", "Screenshots directory containing deployment batches")
	return cmd
}

// NewHistoryShowCmd creates the show command for recorded runs
func NewHistoryShowCmd() *cobra.Command {
	var path string
	var limit int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show recorded scorecard runs",
		Example: `  captain history show --history ./results/history.parquet --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeHistoryShow(cmd.OutOrStdout(), path, limit)
		},
	}

	cmd.Flags().StringVar(&path, "history", "results/history.parquet", "Parquet history file")
	cmd.Flags().IntVar(&limit, "limit", 20, "Show only the most recent N runs (0 for all)")
	return cmd
}
