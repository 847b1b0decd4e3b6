package visioncmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/storefront-insights/captain/internal/gemini"
	"github.com/storefront-insights/captain/internal/ollama"
	"github.com/storefront-insights/captain/internal/openai"
	"github.com/storefront-insights/captain/internal/providers"
	"github.com/storefront-insights/captain/internal/vision"
)

// DefaultProvider is used when neither --provider nor VISION_PROVIDER is set
const DefaultProvider = "gemini"

func getEnvOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// ResolveProviderName picks the flag value, then VISION_PROVIDER, then the default
func ResolveProviderName(flag string) string {
	name := flag
	if name == "" {
		name = getEnvOrDefault("VISION_PROVIDER", DefaultProvider)
	}
	return strings.ToLower(strings.TrimSpace(name))
}

// ResolveModel picks the flag value, then the provider's *_MODEL variable, then its default
func ResolveModel(provider, flag string) string {
	if flag != "" {
		return flag
	}
	switch provider {
	case "gemini":
		return getEnvOrDefault("GEMINI_MODEL", gemini.DefaultModel)
	case "openai":
		return getEnvOrDefault("OPENAI_MODEL", openai.DefaultModel)
	case "ollama":
		return getEnvOrDefault("OLLAMA_MODEL", ollama.DefaultModel)
	}
	return ""
}

func newProvider(ctx context.Context, name string) (providers.Provider, func(), error) {
	noop := func() {}

	switch name {
	case "gemini":
		g, err := gemini.New(ctx, os.Getenv("GEMINI_API_KEY"))
		if err != nil {
			return nil, noop, err
		}
		return g, func() {
			if err := g.Close(); err != nil {
				slog.Warn("Failed to close Gemini client", "err", err)
			}
		}, nil
	case "openai":
		o, err := openai.New(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_BASE_URL"))
		if err != nil {
			return nil, noop, err
		}
		return o, noop, nil
	case "ollama":
		host := getEnvOrDefault("OLLAMA_URL", getEnvOrDefault("OLLAMA_HOST", ollama.DefaultHost))
		return ollama.New(host), noop, nil
	}

	return nil, noop, fmt.Errorf("unsupported provider: %s", name)
}

// NewCapability decides once whether vision analysis is available. The
// returned func releases provider resources.
func NewCapability(ctx context.Context, providerFlag, modelFlag string) (vision.Capability, func()) {
	name := ResolveProviderName(providerFlag)
	model := ResolveModel(name, modelFlag)

	provider, closeFn, err := newProvider(ctx, name)
	capability := vision.CapabilityFrom(name, model, provider, err)

	switch c := capability.(type) {
	case vision.Enabled:
		slog.Info("Vision provider ready", "provider", c.Name, "model", c.Model)
	case vision.Disabled:
		slog.Warn("Vision provider unavailable", "provider", name, "reason", c.Reason)
	}

	return capability, closeFn
}
