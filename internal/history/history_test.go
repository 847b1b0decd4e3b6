package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/storefront-insights/captain/internal/vision"
)

func scorecard(batchID string, overall int, responses map[string]string) vision.Scorecard {
	card := vision.Scorecard{
		BatchID:      batchID,
		AnalyzedAt:   "2025-01-02T10:00:00Z",
		Provider:     "gemini",
		Model:        "gemini-1.5-flash",
		Enabled:      true,
		OverallScore: overall,
	}
	for name, resp := range responses {
		card.Screens = append(card.Screens, vision.ParseResponse(name, resp))
	}
	return card
}

func TestLoadMissingFile(t *testing.T) {
	rows, err := Load(filepath.Join(t.TempDir(), "missing.parquet"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Expected no rows, got %d", len(rows))
	}
}

func TestRecordTrend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history", "runs.parquet")

	tests := []struct {
		runID    string
		overall  int
		expected string
		delta    int
	}{
		{"run-1", 60, "FIRST_RUN", 0},
		{"run-2", 72, "IMPROVING", 12},
		{"run-3", 72, "SAME", 0},
		{"run-4", 50, "DECLINING", -22},
	}

	for _, tt := range tests {
		card := scorecard("deployment-20250102-100000-2", tt.overall, map[string]string{
			"home": "Cart icon visible? Yes\nVisual Hierarchy: 80/100",
		})
		trend, err := Record(path, tt.runID, card)
		if err != nil {
			t.Fatalf("%s: Record failed: %v", tt.runID, err)
		}
		if trend.Label != tt.expected {
			t.Errorf("%s: Expected %s, got %s", tt.runID, tt.expected, trend.Label)
		}
		if trend.Delta != tt.delta {
			t.Errorf("%s: Expected delta %d, got %d", tt.runID, tt.delta, trend.Delta)
		}
	}

	rows, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(rows) != len(tests) {
		t.Fatalf("Expected %d rows, got %d", len(tests), len(rows))
	}

	first := rows[0]
	if first.Screen != "home" || first.VisualHierarchy != 80 || !first.CartIconVisible {
		t.Errorf("Unexpected first row %+v", first)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("Temp file should not remain after write")
	}
}

func TestRecordRejectsEmptyScorecard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.parquet")
	if _, err := Record(path, "run-1", vision.Scorecard{}); err == nil {
		t.Error("Expected error for a scorecard without screens")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("No history file should be written")
	}
}

func TestRuns(t *testing.T) {
	rows := []Row{
		{RunID: "a", BatchID: "b1", RunOverall: 60, Status: vision.StatusOK},
		{RunID: "a", BatchID: "b1", RunOverall: 60, Status: vision.StatusFailed},
		{RunID: "b", BatchID: "b2", RunOverall: 70, Status: vision.StatusOK},
	}

	runs := Runs(rows)
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].RunID != "a" || runs[0].Screens != 2 || runs[0].Failed != 1 {
		t.Errorf("Unexpected first run %+v", runs[0])
	}
	if runs[1].Overall != 70 || runs[1].Failed != 0 {
		t.Errorf("Unexpected second run %+v", runs[1])
	}
}
