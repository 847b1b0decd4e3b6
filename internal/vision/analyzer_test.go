package vision

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/storefront-insights/captain/internal/providers"
	"github.com/storefront-insights/captain/internal/screenshots"
)

type fakeProvider struct {
	responses map[string]string
	failFor   map[string]bool
	calls     []providers.Config
}

func (f *fakeProvider) AnalyzeImage(ctx context.Context, config providers.Config) (string, error) {
	f.calls = append(f.calls, config)
	for screen := range f.failFor {
		if strings.Contains(config.Prompt, "SCREEN: "+screen+" ") {
			return "", errors.New("upstream timeout")
		}
	}
	for screen, resp := range f.responses {
		if strings.Contains(config.Prompt, "SCREEN: "+screen+" ") {
			return resp, nil
		}
	}
	return "", nil
}

func writeBatch(t *testing.T, names ...string) screenshots.DeploymentBatch {
	t.Helper()
	dir := t.TempDir()
	batch := screenshots.DeploymentBatch{ID: "deployment-20250102-100000-2", Dir: dir, ImagePaths: map[string]string{}}
	for _, name := range names {
		path := filepath.Join(dir, name+".png")
		if err := os.WriteFile(path, []byte("png"), 0644); err != nil {
			t.Fatalf("Failed to write image: %v", err)
		}
		batch.ImagePaths[name] = path
	}
	return batch
}

func TestCapabilityFrom(t *testing.T) {
	if _, ok := CapabilityFrom("gemini", "m", nil, errors.New("GEMINI_API_KEY environment variable not set")).(Disabled); !ok {
		t.Error("Expected Disabled when construction failed")
	}
	if _, ok := CapabilityFrom("gemini", "m", nil, nil).(Disabled); !ok {
		t.Error("Expected Disabled for nil provider")
	}
	c, ok := CapabilityFrom("fake", "m", &fakeProvider{}, nil).(Enabled)
	if !ok {
		t.Fatal("Expected Enabled for a ready provider")
	}
	if c.Name != "fake" || c.Model != "m" {
		t.Errorf("Unexpected capability %+v", c)
	}
}

func TestAnalyzeBatchDisabled(t *testing.T) {
	analyzer := NewAnalyzer(Disabled{Reason: "no key"})
	card := analyzer.AnalyzeBatch(context.Background(), writeBatch(t, "home"))

	if card.Enabled {
		t.Error("Expected disabled scorecard")
	}
	if card.Message != LimitedModeMessage {
		t.Errorf("Expected limited mode message, got %q", card.Message)
	}
	if len(card.Recommendations) != 0 {
		t.Errorf("Expected no recommendations, got %v", card.Recommendations)
	}
	if len(card.Screens) != 0 {
		t.Errorf("Expected no screens, got %d", len(card.Screens))
	}
	if card.Succeeded() {
		t.Error("Disabled run should not count as a successful pass")
	}
}

func TestAnalyzeScreenDisabled(t *testing.T) {
	a := NewAnalyzer(Disabled{Reason: "no key"}).AnalyzeScreen(context.Background(), "home", "/nonexistent.png")

	if a.Status != StatusDisabled {
		t.Errorf("Expected disabled status, got %s", a.Status)
	}
	if !strings.HasPrefix(a.Error, LimitedModeMessage) {
		t.Errorf("Expected limited mode message, got %q", a.Error)
	}
	if len(a.Recommendations) != 0 {
		t.Errorf("Expected no recommendations, got %v", a.Recommendations)
	}
}

func TestAnalyzeBatchContinuesAfterFailure(t *testing.T) {
	provider := &fakeProvider{
		responses: map[string]string{
			"home":        "Cart icon visible? Yes\nVisual Hierarchy: 80/100\nSimplicity: 60/100\n**RECOMMENDATIONS:**\n- Bigger search",
			"home_mobile": "Cart icon visible? No\nOverall Score: 40/100\n**ISSUES:**\n- Tiny tap targets",
		},
		failFor: map[string]bool{"checkout": true},
	}
	analyzer := NewAnalyzer(Enabled{Provider: provider, Name: "fake", Model: "vision-1"})

	card := analyzer.AnalyzeBatch(context.Background(), writeBatch(t, "home", "home_mobile", "checkout"))

	if len(provider.calls) != 3 {
		t.Fatalf("Expected 3 provider calls, got %d", len(provider.calls))
	}

	if len(card.Screens) != 3 {
		t.Fatalf("Expected 3 screens, got %d", len(card.Screens))
	}

	// screens are processed in name order
	if card.Screens[0].ScreenName != "checkout" || card.Screens[1].ScreenName != "home" || card.Screens[2].ScreenName != "home_mobile" {
		t.Errorf("Unexpected screen order: %s, %s, %s", card.Screens[0].ScreenName, card.Screens[1].ScreenName, card.Screens[2].ScreenName)
	}

	failed := card.Screens[0]
	if failed.Status != StatusFailed || failed.OverallScore != 0 || failed.Error != "upstream timeout" {
		t.Errorf("Unexpected failed screen %+v", failed)
	}
	if len(failed.Recommendations) != 0 || len(failed.Issues) != 0 {
		t.Error("Failed screen should have empty findings")
	}

	if card.ScreensAnalyzed != 2 || card.ScreensFailed != 1 {
		t.Errorf("Expected 2 analyzed / 1 failed, got %d / %d", card.ScreensAnalyzed, card.ScreensFailed)
	}

	// home derives 70, home_mobile has explicit 40
	if card.OverallScore != 55 {
		t.Errorf("Expected overall 55, got %d", card.OverallScore)
	}

	if card.CategoryAverages[CategoryVisualHierarchy] != 80 {
		t.Errorf("Expected visual hierarchy average 80, got %d", card.CategoryAverages[CategoryVisualHierarchy])
	}

	if !card.CartVisible {
		t.Error("Expected cart visible on at least one screen")
	}

	if card.Recommendations[0] != "home: Bigger search" {
		t.Errorf("Unexpected first recommendation %q", card.Recommendations[0])
	}

	if len(card.Issues) != 1 || card.Issues[0] != "home_mobile: Tiny tap targets" {
		t.Errorf("Unexpected issues %v", card.Issues)
	}

	if card.Provider != "fake" || card.Model != "vision-1" {
		t.Errorf("Unexpected provider/model %s/%s", card.Provider, card.Model)
	}

	if !card.Succeeded() {
		t.Error("Expected successful pass")
	}
}

func TestAnalyzeScreenPassesRequest(t *testing.T) {
	provider := &fakeProvider{responses: map[string]string{"home": "Overall: 90/100"}}
	analyzer := NewAnalyzer(
		Enabled{Provider: provider, Name: "fake", Model: "vision-1"},
		WithGoals(Goals{Vision: "Sell tea"}),
		WithTemperature(0.3),
	)

	batch := writeBatch(t, "home")
	a := analyzer.AnalyzeScreen(context.Background(), "home", batch.ImagePaths["home"])

	if a.OverallScore != 90 {
		t.Errorf("Expected 90, got %d", a.OverallScore)
	}

	call := provider.calls[0]
	if call.Model != "vision-1" || call.Temperature != 0.3 || call.MIMEType != "image/png" || string(call.Image) != "png" {
		t.Errorf("Unexpected request %+v", call)
	}
	if !strings.Contains(call.Prompt, "Sell tea") {
		t.Error("Expected goals in prompt")
	}
}

func TestAnalyzeScreenMissingImage(t *testing.T) {
	provider := &fakeProvider{}
	analyzer := NewAnalyzer(Enabled{Provider: provider, Name: "fake", Model: "m"})

	a := analyzer.AnalyzeScreen(context.Background(), "home", filepath.Join(t.TempDir(), "missing.png"))

	if a.Status != StatusFailed {
		t.Errorf("Expected failed status, got %s", a.Status)
	}
	if len(provider.calls) != 0 {
		t.Error("Provider should not be called when the image cannot be read")
	}
}

func TestScorecardDeduplicatesRecommendations(t *testing.T) {
	var card Scorecard
	card.aggregate([]ScreenAnalysis{
		ParseResponse("home", "Overall: 50/100"),
		ParseResponse("cart", "Overall: 70/100"),
	})

	count := 0
	for _, r := range card.Recommendations {
		if r == CriticalCartRecommendation {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected the critical recommendation once across screens, got %d", count)
	}

	if card.OverallScore != 60 {
		t.Errorf("Expected 60, got %d", card.OverallScore)
	}
}
