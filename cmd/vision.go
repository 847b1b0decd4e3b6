package cmd

import (
	"github.com/spf13/cobra"
	"github.com/storefront-insights/captain/internal/visioncmd"
)

func newVisionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vision",
		Short: "Analyze screenshots with a vision provider",
		Long: `Commands for scoring screenshots and inspecting the analysis pipeline.

Available commands:
  analyze - Score the current deployment batch
  prompt  - Print the prompt sent for a screen
  parse   - Parse a saved model reply`,
	}

	cmd.AddCommand(visioncmd.NewAnalyzeCmd())
	cmd.AddCommand(visioncmd.NewPromptCmd())
	cmd.AddCommand(visioncmd.NewParseCmd())

	return cmd
}
