package vision

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/storefront-insights/captain/internal/providers"
	"github.com/storefront-insights/captain/internal/screenshots"
)

// LimitedModeMessage is reported whenever no vision provider is available
const LimitedModeMessage = "Vision AI is running in limited mode: no vision provider is available, so screenshots were not scored. Configure a provider API key (for example GEMINI_API_KEY) to enable visual analysis."

// DefaultTemperature keeps scores stable between runs
const DefaultTemperature = 0.1

// Capability records, once, whether a vision provider can be called
type Capability interface {
	capability()
}

// Enabled carries a ready provider
type Enabled struct {
	Provider providers.Provider
	Name     string
	Model    string
}

// Disabled carries the reason no provider is available
type Disabled struct {
	Reason string
}

func (Enabled) capability()  {}
func (Disabled) capability() {}

// CapabilityFrom turns the result of provider construction into a Capability
func CapabilityFrom(name, model string, provider providers.Provider, err error) Capability {
	if err != nil {
		return Disabled{Reason: err.Error()}
	}
	if provider == nil {
		return Disabled{Reason: fmt.Sprintf("provider %q is not available", name)}
	}
	return Enabled{Provider: provider, Name: name, Model: model}
}

// Analyzer scores screenshots with a vision provider
type Analyzer struct {
	capability  Capability
	goals       Goals
	kb          KnowledgeBase
	temperature float64
	readFile    func(string) ([]byte, error)
	now         func() time.Time
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithGoals sets the project goals used in every prompt
func WithGoals(goals Goals) Option {
	return func(a *Analyzer) { a.goals = goals.WithDefaults() }
}

// WithKnowledgeBase replaces the compiled-in base instructions
func WithKnowledgeBase(kb KnowledgeBase) Option {
	return func(a *Analyzer) { a.kb = kb }
}

// WithTemperature overrides DefaultTemperature
func WithTemperature(t float64) Option {
	return func(a *Analyzer) { a.temperature = t }
}

// NewAnalyzer returns an analyzer bound to the given capability
func NewAnalyzer(capability Capability, opts ...Option) *Analyzer {
	if capability == nil {
		capability = Disabled{Reason: "no provider configured"}
	}
	a := &Analyzer{
		capability:  capability,
		goals:       Goals{}.WithDefaults(),
		kb:          DefaultKnowledgeBase{},
		temperature: DefaultTemperature,
		readFile:    os.ReadFile,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Capability returns the capability chosen at construction
func (a *Analyzer) Capability() Capability {
	return a.capability
}

// Enabled reports whether a provider is available
func (a *Analyzer) Enabled() bool {
	_, ok := a.capability.(Enabled)
	return ok
}

// AnalyzeScreen reads one screenshot from disk and analyzes it
func (a *Analyzer) AnalyzeScreen(ctx context.Context, screenName, imagePath string) ScreenAnalysis {
	if d, ok := a.capability.(Disabled); ok {
		return failedAnalysis(screenName, StatusDisabled, LimitedModeMessage+" ("+d.Reason+")")
	}

	image, err := a.readFile(imagePath)
	if err != nil {
		slog.Error("Failed to read screenshot", "screen", screenName, "path", imagePath, "err", err)
		return failedAnalysis(screenName, StatusFailed, fmt.Sprintf("failed to read image: %v", err))
	}

	return a.AnalyzeImage(ctx, screenName, image, screenshots.MIMEType(imagePath))
}

// AnalyzeImage analyzes an in-memory screenshot. Provider failures become a
// zero-score result carrying the error; they are never returned.
func (a *Analyzer) AnalyzeImage(ctx context.Context, screenName string, image []byte, mimeType string) ScreenAnalysis {
	enabled, ok := a.capability.(Enabled)
	if !ok {
		reason := ""
		if d, isDisabled := a.capability.(Disabled); isDisabled {
			reason = d.Reason
		}
		return failedAnalysis(screenName, StatusDisabled, LimitedModeMessage+" ("+reason+")")
	}

	prompt := BuildPrompt(screenName, a.goals, a.kb)

	start := a.now()
	response, err := enabled.Provider.AnalyzeImage(ctx, providers.Config{
		Model:       enabled.Model,
		Temperature: a.temperature,
		Prompt:      prompt,
		Image:       image,
		MIMEType:    mimeType,
	})
	if err != nil {
		slog.Error("Vision analysis failed", "screen", screenName, "provider", enabled.Name, "model", enabled.Model, "err", err)
		return failedAnalysis(screenName, StatusFailed, err.Error())
	}

	analysis := ParseResponse(screenName, response)
	slog.Info("Analyzed screen",
		"screen", screenName,
		"device", analysis.Device,
		"overall", analysis.OverallScore,
		"recommendations", len(analysis.Recommendations),
		"duration", a.now().Sub(start))

	return analysis
}

// AnalyzeBatch analyzes every screen of a batch one at a time, in screen
// name order. A failed screen never stops the batch.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, batch screenshots.DeploymentBatch) Scorecard {
	card := Scorecard{
		BatchID:    batch.ID,
		CapturedAt: batch.Timestamp(),
		AnalyzedAt: a.now().UTC().Format(time.RFC3339),
		Enabled:    a.Enabled(),
	}
	if enabled, ok := a.capability.(Enabled); ok {
		card.Provider = enabled.Name
		card.Model = enabled.Model
	}

	if d, ok := a.capability.(Disabled); ok {
		slog.Warn("Vision analysis disabled", "reason", d.Reason)
		card.Message = LimitedModeMessage
		card.Recommendations = []string{}
		return card
	}

	names := make([]string, 0, len(batch.ImagePaths))
	for name := range batch.ImagePaths {
		names = append(names, name)
	}
	sort.Strings(names)

	slog.Info("Analyzing batch", "batch", batch.ID, "screens", len(names))

	screens := make([]ScreenAnalysis, 0, len(names))
	for i, name := range names {
		slog.Info("Processing screen", "screen", name, "progress", fmt.Sprintf("%d/%d", i+1, len(names)))
		screens = append(screens, a.AnalyzeScreen(ctx, name, batch.ImagePaths[name]))
	}

	card.aggregate(screens)
	return card
}
