package vision

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Fallback phrases used when a project goal is not configured
const (
	DefaultVision          = "Build a clean, trustworthy online store that makes products easy to find and buy"
	DefaultDesignPrinciple = "Search-first, mobile-first, simplicity over decoration"
	DefaultAccessibility   = "WCAG 2.1 AA: readable contrast, large tap targets, descriptive labels"
)

// Goals holds the project goals fed verbatim into every prompt
type Goals struct {
	Vision          string `yaml:"vision" json:"vision"`
	DesignPrinciple string `yaml:"design_principle" json:"design_principle"`
	Accessibility   string `yaml:"accessibility" json:"accessibility"`
}

// WithDefaults fills every empty goal with its fallback phrase
func (g Goals) WithDefaults() Goals {
	if g.Vision == "" {
		g.Vision = DefaultVision
	}
	if g.DesignPrinciple == "" {
		g.DesignPrinciple = DefaultDesignPrinciple
	}
	if g.Accessibility == "" {
		g.Accessibility = DefaultAccessibility
	}
	return g
}

// LoadGoals reads project goals from a YAML file. A missing file is not an
// error and yields the defaults.
func LoadGoals(path string) (Goals, error) {
	if path == "" {
		return Goals{}.WithDefaults(), nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Goals{}.WithDefaults(), nil
	}
	if err != nil {
		return Goals{}, fmt.Errorf("failed to read goals file: %w", err)
	}

	var goals Goals
	if err := yaml.Unmarshal(data, &goals); err != nil {
		return Goals{}, fmt.Errorf("failed to parse goals file %s: %w", path, err)
	}

	return goals.WithDefaults(), nil
}
