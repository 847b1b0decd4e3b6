package visioncmd

import (
	"fmt"
	"io"

	"github.com/storefront-insights/captain/internal/screenshots"
)

func executeBatchesList(w io.Writer, dir string) error {
	selector := screenshots.NewSelector(dir)

	current, err := selector.Resolve()
	if err != nil {
		return fmt.Errorf("failed to resolve current batch: %w", err)
	}

	batches, err := selector.List()
	if err != nil {
		return fmt.Errorf("failed to list batches: %w", err)
	}

	if len(batches) == 0 {
		fmt.Fprintf(w, "No deployment batches in %s\n", dir)
		return nil
	}

	fmt.Fprintf(w, "%-3s %-40s %-20s %s\n", "", "BATCH", "CAPTURED", "SCREENS")
	for _, b := range batches {
		marker := ""
		if b.ID == current.ID {
			marker = "*"
		}
		fmt.Fprintf(w, "%-3s %-40s %-20s %d\n", marker, b.ID, b.Timestamp(), len(b.ImagePaths))
	}
	return nil
}

func executeBatchesCleanup(w io.Writer, dir string) error {
	selector := screenshots.NewSelector(dir)

	current, err := selector.Resolve()
	if err != nil {
		return fmt.Errorf("failed to resolve current batch: %w", err)
	}

	if current.Legacy || current.ID == "" {
		fmt.Fprintln(w, "No current deployment batch; nothing to clean up")
		return nil
	}

	result := selector.Cleanup(current)
	for _, name := range result.Removed {
		fmt.Fprintf(w, "Removed %s\n", name)
	}
	for _, name := range result.Failed {
		fmt.Fprintf(w, "Failed to remove %s\n", name)
	}
	fmt.Fprintf(w, "Kept current batch %s\n", current.ID)
	return nil
}
