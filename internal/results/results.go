package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/storefront-insights/captain/internal/vision"
	"gopkg.in/yaml.v3"
)

// RunConfig records how a scorecard was produced
type RunConfig struct {
	Provider    string       `yaml:"provider" json:"provider"`
	Model       string       `yaml:"model" json:"model"`
	Screenshots string       `yaml:"screenshots" json:"screenshots"`
	Goals       vision.Goals `yaml:"goals" json:"goals"`
	Timestamp   string       `yaml:"timestamp" json:"timestamp"`
}

// Report is the document written to disk for one run
type Report struct {
	Config    RunConfig        `yaml:"config" json:"config"`
	Scorecard vision.Scorecard `yaml:"scorecard" json:"scorecard"`
}

// Filename returns "<batch>-<timestamp>.<ext>"; legacy runs use "legacy"
func Filename(report Report, ext string) string {
	batch := report.Scorecard.BatchID
	if batch == "" {
		batch = "legacy"
	}
	ts := report.Config.Timestamp
	if ts == "" {
		ts = time.Now().Format("2006-01-02_15-04-05")
	}
	return fmt.Sprintf("%s-%s.%s", batch, ts, ext)
}

// SaveYAML writes the report as YAML into outputDir and returns the file path
func SaveYAML(outputDir string, report Report) (string, error) {
	data, err := yaml.Marshal(&report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return write(outputDir, Filename(report, "yaml"), data)
}

// SaveJSON writes the report as indented JSON into outputDir and returns the file path
func SaveJSON(outputDir string, report Report) (string, error) {
	data, err := json.MarshalIndent(&report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return write(outputDir, Filename(report, "json"), data)
}

func write(outputDir, filename string, data []byte) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(outputDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return path, nil
}

// Load reads a report saved by SaveYAML or SaveJSON
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report file: %w", err)
	}

	var report Report
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &report)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &report)
	default:
		return nil, fmt.Errorf("unsupported report format: %s (supported: .yaml, .json)", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}

	return &report, nil
}
