package visioncmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/storefront-insights/captain/internal/vision"
	"gopkg.in/yaml.v3"
)

func executePrompt(w io.Writer, screen, goalsPath string) error {
	goals, err := vision.LoadGoals(goalsPath)
	if err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}

	fmt.Fprint(w, vision.BuildPrompt(screen, goals, vision.DefaultKnowledgeBase{}))
	return nil
}

// executeParse runs the parser over a saved model reply
func executeParse(w io.Writer, screen, responsePath, format string) error {
	data, err := os.ReadFile(responsePath)
	if err != nil {
		return fmt.Errorf("failed to read response file: %w", err)
	}

	analysis := vision.ParseResponse(screen, string(data))
	analysis.RawResponse = ""

	var out []byte
	switch format {
	case "json":
		out, err = json.MarshalIndent(analysis, "", "  ")
		out = append(out, '\n')
	case "yaml", "":
		out, err = yaml.Marshal(analysis)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	_, err = w.Write(out)
	return err
}
