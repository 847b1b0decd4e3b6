package results

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/storefront-insights/captain/internal/vision"
)

func sampleReport() Report {
	card := vision.Scorecard{
		BatchID:         "deployment-20250102-100000-2",
		Enabled:         true,
		Provider:        "gemini",
		Model:           "gemini-1.5-flash",
		OverallScore:    72,
		ScreensAnalyzed: 1,
		Recommendations: []string{"home: Bigger search"},
		Screens:         []vision.ScreenAnalysis{vision.ParseResponse("home", "Visual Hierarchy: 72/100\nCart icon visible? Yes")},
	}
	return Report{
		Config: RunConfig{
			Provider:  "gemini",
			Model:     "gemini-1.5-flash",
			Goals:     vision.Goals{}.WithDefaults(),
			Timestamp: "2025-01-02_10-05-00",
		},
		Scorecard: card,
	}
}

func TestFilename(t *testing.T) {
	report := sampleReport()
	if got := Filename(report, "yaml"); got != "deployment-20250102-100000-2-2025-01-02_10-05-00.yaml" {
		t.Errorf("Unexpected filename %s", got)
	}

	report.Scorecard.BatchID = ""
	if got := Filename(report, "json"); !strings.HasPrefix(got, "legacy-") {
		t.Errorf("Expected legacy prefix, got %s", got)
	}
}

func TestSaveAndLoadYAML(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := SaveYAML(dir, sampleReport())
	if err != nil {
		t.Fatalf("SaveYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Scorecard.OverallScore != 72 {
		t.Errorf("Expected overall 72, got %d", loaded.Scorecard.OverallScore)
	}
	if len(loaded.Scorecard.Screens) != 1 || loaded.Scorecard.Screens[0].SubScores[vision.CategoryVisualHierarchy] != 72 {
		t.Errorf("Screen scores not preserved: %+v", loaded.Scorecard.Screens)
	}
	if loaded.Config.Goals.Vision != vision.DefaultVision {
		t.Errorf("Goals not preserved: %+v", loaded.Config.Goals)
	}
}

func TestSaveAndLoadJSON(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveJSON(dir, sampleReport())
	if err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Scorecard.Recommendations[0] != "home: Bigger search" {
		t.Errorf("Unexpected recommendations %v", loaded.Scorecard.Recommendations)
	}
	if !loaded.Scorecard.Screens[0].FeatureFlags[vision.FlagCartIconVisible] {
		t.Error("Feature flags not preserved")
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for unsupported format, got nil")
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/report.yaml"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}
