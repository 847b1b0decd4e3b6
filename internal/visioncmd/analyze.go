package visioncmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/storefront-insights/captain/internal/history"
	"github.com/storefront-insights/captain/internal/publish"
	"github.com/storefront-insights/captain/internal/results"
	"github.com/storefront-insights/captain/internal/screenshots"
	"github.com/storefront-insights/captain/internal/vision"
)

type analyzeOptions struct {
	screenshotsDir string
	goalsPath      string
	provider       string
	model          string
	outputDir      string
	historyPath    string
	publish        bool
	keepBatches    bool
	temperature    float64
	verbose        bool
}

func executeAnalyze(ctx context.Context, w io.Writer, opts analyzeOptions) error {
	setupLogging(opts.verbose)

	capability, closeProvider := NewCapability(ctx, opts.provider, opts.model)
	defer closeProvider()

	return runAnalyze(ctx, w, opts, capability)
}

// runAnalyze scores the current batch and handles every follow-up step
func runAnalyze(ctx context.Context, w io.Writer, opts analyzeOptions, capability vision.Capability) error {
	slog.Info("Starting vision analysis",
		"screenshots", opts.screenshotsDir,
		"goals", opts.goalsPath,
		"output", opts.outputDir)

	goals, err := vision.LoadGoals(opts.goalsPath)
	if err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}

	selector := screenshots.NewSelector(opts.screenshotsDir)
	batch, err := selector.Resolve()
	if err != nil {
		return fmt.Errorf("failed to select screenshots: %w", err)
	}

	if batch.Empty() {
		slog.Warn("No screenshots found", "dir", opts.screenshotsDir)
		fmt.Fprintf(w, "No screenshots found in %s\n", opts.screenshotsDir)
		return nil
	}

	slog.Info("Selected batch", "batch", batch.ID, "legacy", batch.Legacy, "screens", len(batch.ImagePaths))

	analyzer := vision.NewAnalyzer(capability,
		vision.WithGoals(goals),
		vision.WithTemperature(opts.temperature),
	)

	card := analyzer.AnalyzeBatch(ctx, batch)
	printSummary(w, card)

	report := results.Report{
		Config: results.RunConfig{
			Provider:    card.Provider,
			Model:       card.Model,
			Screenshots: opts.screenshotsDir,
			Goals:       goals.WithDefaults(),
			Timestamp:   time.Now().Format("2006-01-02_15-04-05"),
		},
		Scorecard: card,
	}

	var saved []string
	yamlPath, err := results.SaveYAML(opts.outputDir, report)
	if err != nil {
		return fmt.Errorf("failed to save YAML results: %w", err)
	}
	saved = append(saved, yamlPath)

	jsonPath, err := results.SaveJSON(opts.outputDir, report)
	if err != nil {
		fmt.Fprintf(w, "Warning: Failed to save JSON results: %v\n", err)
	} else {
		saved = append(saved, jsonPath)
	}

	for _, p := range saved {
		fmt.Fprintf(w, "Results saved to: %s\n", p)
	}

	if opts.historyPath != "" && card.Succeeded() {
		trend, err := history.Record(opts.historyPath, uuid.New().String(), card)
		if err != nil {
			slog.Error("Failed to record history", "path", opts.historyPath, "err", err)
		} else {
			printTrend(w, trend)
		}
	}

	if opts.publish {
		publishResults(ctx, w, card.BatchID, saved)
	}

	if card.Succeeded() && !opts.keepBatches {
		removed := selector.Cleanup(batch)
		if len(removed.Removed) > 0 || len(removed.Failed) > 0 {
			fmt.Fprintf(w, "Cleaned up %d old batch(es), %d failed\n", len(removed.Removed), len(removed.Failed))
		}
	}

	slog.Info("Vision analysis complete", "batch", card.BatchID, "score", card.OverallScore)
	return nil
}

// publishResults uploads saved files; failures are only reported
func publishResults(ctx context.Context, w io.Writer, batchID string, paths []string) {
	store, err := publish.NewFromEnv(ctx)
	if err != nil {
		slog.Warn("Skipping publish", "err", err)
		return
	}

	for _, p := range paths {
		url, err := store.Upload(ctx, p, publish.ObjectKey(batchID, p))
		if err != nil {
			slog.Error("Failed to publish results", "path", p, "err", err)
			continue
		}
		fmt.Fprintf(w, "Published: %s\n", url)
	}
}
