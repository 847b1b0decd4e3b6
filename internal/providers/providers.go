package providers

import (
	"context"
)

// Config represents a single vision request sent to an LLM provider
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
	Image       []byte
	MIMEType    string
}

// Provider defines the interface for a vision-capable LLM provider
type Provider interface {
	AnalyzeImage(ctx context.Context, config Config) (string, error)
}
