package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "captain",
		Short: "Storefront screenshot scoring with vision-capable LLMs",
		Long: `Captain scores storefront screenshots captured at deployment time.

Each screen is rated for e-commerce visibility, hierarchy, search, mobile
fit, simplicity, accessibility and brand consistency, and the results are
aggregated into a scorecard.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newVisionCmd())
	cmd.AddCommand(newBatchesCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}
