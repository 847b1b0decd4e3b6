package visioncmd

import (
	"fmt"
	"io"

	"github.com/storefront-insights/captain/internal/history"
)

func executeHistoryShow(w io.Writer, path string, limit int) error {
	rows, err := history.Load(path)
	if err != nil {
		return err
	}

	runs := history.Runs(rows)
	if len(runs) == 0 {
		fmt.Fprintf(w, "No runs recorded in %s\n", path)
		return nil
	}

	if limit > 0 && len(runs) > limit {
		runs = runs[len(runs)-limit:]
	}

	fmt.Fprintf(w, "%-25s %-40s %-10s %7s %7s %6s\n", "ANALYZED", "BATCH", "PROVIDER", "SCREENS", "FAILED", "SCORE")
	for _, r := range runs {
		batch := r.BatchID
		if batch == "" {
			batch = "legacy"
		}
		fmt.Fprintf(w, "%-25s %-40s %-10s %7d %7d %6d\n", r.AnalyzedAt, batch, r.Provider, r.Screens, r.Failed, r.Overall)
	}
	return nil
}
