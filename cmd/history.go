package cmd

import (
	"github.com/spf13/cobra"
	"github.com/storefront-insights/captain/internal/visioncmd"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show scorecard history",
	}

	cmd.AddCommand(visioncmd.NewHistoryShowCmd())

	return cmd
}
