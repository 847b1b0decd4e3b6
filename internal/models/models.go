package models

import (
	"time"

	"github.com/storefront-insights/captain/internal/vision"
)

// Run is one screenshot analyzed through the HTTP API
type Run struct {
	ID        string                `json:"id"`
	Screen    string                `json:"screen"`
	Filename  string                `json:"filename"`
	Provider  string                `json:"provider,omitempty"`
	Model     string                `json:"model,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	Analysis  vision.ScreenAnalysis `json:"analysis"`
}
