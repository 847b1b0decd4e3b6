package cmd

import (
	"github.com/spf13/cobra"
	"github.com/storefront-insights/captain/internal/visioncmd"
)

func newBatchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batches",
		Short: "Inspect and prune deployment screenshot batches",
	}

	cmd.AddCommand(visioncmd.NewBatchesListCmd())
	cmd.AddCommand(visioncmd.NewBatchesCleanupCmd())

	return cmd
}
