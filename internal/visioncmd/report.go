package visioncmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/storefront-insights/captain/internal/history"
	"github.com/storefront-insights/captain/internal/vision"
)

func printSummary(w io.Writer, card vision.Scorecard) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", 80))
	fmt.Fprintln(w, "VISION SCORECARD")
	fmt.Fprintln(w, strings.Repeat("=", 80))

	if !card.Enabled {
		fmt.Fprintln(w, card.Message)
		fmt.Fprintln(w, strings.Repeat("=", 80))
		return
	}

	batch := card.BatchID
	if batch == "" {
		batch = "(legacy layout)"
	}
	fmt.Fprintf(w, "Batch: %s\n", batch)
	if card.CapturedAt != "" {
		fmt.Fprintf(w, "Captured: %s\n", card.CapturedAt)
	}
	fmt.Fprintf(w, "Provider: %s (%s)\n", card.Provider, card.Model)
	fmt.Fprintf(w, "Screens: %d analyzed, %d failed\n", card.ScreensAnalyzed, card.ScreensFailed)
	fmt.Fprintf(w, "\nOverall Score: %d/100\n", card.OverallScore)

	fmt.Fprintln(w, "\nCategory Averages:")
	for _, c := range vision.Categories {
		if score := card.CategoryAverages[c]; score > 0 {
			fmt.Fprintf(w, "  %-22s %3d/100\n", c+":", score)
		}
	}

	cart := "yes"
	if !card.CartVisible {
		cart = "NO"
	}
	fmt.Fprintf(w, "\nCart visible on any screen: %s\n", cart)

	printList(w, "Issues", card.Issues)
	printList(w, "Recommendations", card.Recommendations)
	printList(w, "Highlights", card.Highlights)

	fmt.Fprintln(w, strings.Repeat("=", 80))
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

func printTrend(w io.Writer, trend history.Trend) {
	if trend.Label == "FIRST_RUN" {
		fmt.Fprintf(w, "Trend: %s (score %d)\n", trend.Label, trend.Current)
		return
	}
	fmt.Fprintf(w, "Trend: %s (%d -> %d, %+d)\n", trend.Label, trend.Previous, trend.Current, trend.Delta)
}
