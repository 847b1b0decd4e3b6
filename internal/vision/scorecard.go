package vision

// Scorecard aggregates the screen analyses of one run
type Scorecard struct {
	BatchID          string           `json:"batch_id" yaml:"batch_id"`
	CapturedAt       string           `json:"captured_at,omitempty" yaml:"captured_at,omitempty"`
	AnalyzedAt       string           `json:"analyzed_at" yaml:"analyzed_at"`
	Provider         string           `json:"provider,omitempty" yaml:"provider,omitempty"`
	Model            string           `json:"model,omitempty" yaml:"model,omitempty"`
	Enabled          bool             `json:"enabled" yaml:"enabled"`
	Message          string           `json:"message,omitempty" yaml:"message,omitempty"`
	OverallScore     int              `json:"overall_score" yaml:"overall_score"`
	CategoryAverages map[string]int   `json:"category_averages,omitempty" yaml:"category_averages,omitempty"`
	CartVisible      bool             `json:"cart_visible" yaml:"cart_visible"`
	ScreensAnalyzed  int              `json:"screens_analyzed" yaml:"screens_analyzed"`
	ScreensFailed    int              `json:"screens_failed" yaml:"screens_failed"`
	Issues           []string         `json:"issues,omitempty" yaml:"issues,omitempty"`
	Recommendations  []string         `json:"recommendations" yaml:"recommendations"`
	Highlights       []string         `json:"highlights,omitempty" yaml:"highlights,omitempty"`
	Screens          []ScreenAnalysis `json:"screens,omitempty" yaml:"screens,omitempty"`
}

// Succeeded reports whether at least one screen was scored
func (s Scorecard) Succeeded() bool {
	return s.ScreensAnalyzed > 0
}

// aggregate fills the run-level fields from the per-screen results.
// Only screens with StatusOK contribute scores.
func (s *Scorecard) aggregate(screens []ScreenAnalysis) {
	s.Screens = screens
	s.CategoryAverages = make(map[string]int, len(Categories))
	s.Recommendations = []string{}

	categoryTotals := make(map[string]int, len(Categories))
	categoryCounts := make(map[string]int, len(Categories))
	overallTotal := 0
	seen := make(map[string]bool)

	for _, screen := range screens {
		if screen.Status != StatusOK {
			s.ScreensFailed++
			continue
		}
		s.ScreensAnalyzed++
		overallTotal += screen.OverallScore

		for _, c := range Categories {
			if v := screen.SubScores[c]; v > 0 {
				categoryTotals[c] += v
				categoryCounts[c]++
			}
		}

		if screen.FeatureFlags[FlagCartIconVisible] {
			s.CartVisible = true
		}

		for _, rec := range screen.Recommendations {
			if !seen[rec] {
				seen[rec] = true
				s.Recommendations = append(s.Recommendations, rec)
			}
		}
		for _, issue := range screen.Issues {
			s.Issues = append(s.Issues, screen.ScreenName+": "+issue)
		}
		for _, h := range screen.Highlights {
			s.Highlights = append(s.Highlights, screen.ScreenName+": "+h)
		}
	}

	for _, c := range Categories {
		if categoryCounts[c] > 0 {
			s.CategoryAverages[c] = categoryTotals[c] / categoryCounts[c]
		} else {
			s.CategoryAverages[c] = 0
		}
	}

	if s.ScreensAnalyzed > 0 {
		s.OverallScore = overallTotal / s.ScreensAnalyzed
	}
}
