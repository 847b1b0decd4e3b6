package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/storefront-insights/captain/internal/providers"
)

// DefaultModel is used when OPENAI_MODEL is not set
const DefaultModel = "gpt-4o"

const maxTokens = 4000

// OpenAI is a provider for OpenAI-compatible chat completion APIs
type OpenAI struct {
	client *goopenai.Client
}

// New returns a new OpenAI provider. baseURL may be empty.
func New(apiKey, baseURL string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAI{client: goopenai.NewClientWithConfig(cfg)}, nil
}

// AnalyzeImage sends the prompt and a base64 data URL of the image as one user message
func (o *OpenAI) AnalyzeImage(ctx context.Context, config providers.Config) (string, error) {
	req := goopenai.ChatCompletionRequest{
		Model:       config.Model,
		Temperature: float32(config.Temperature),
		Messages: []goopenai.ChatCompletionMessage{
			{
				Role: goopenai.ChatMessageRoleUser,
				MultiContent: []goopenai.ChatMessagePart{
					{
						Type: goopenai.ChatMessagePartTypeText,
						Text: config.Prompt,
					},
					{
						Type: goopenai.ChatMessagePartTypeImageURL,
						ImageURL: &goopenai.ChatMessageImageURL{
							URL:    dataURL(config.MIMEType, config.Image),
							Detail: goopenai.ImageURLDetailHigh,
						},
					},
				},
			},
		},
	}
	// Reasoning models reject max_tokens
	if strings.HasPrefix(config.Model, "o1") || strings.HasPrefix(config.Model, "o3") || strings.HasPrefix(config.Model, "o4") || strings.HasPrefix(config.Model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

func dataURL(mimeType string, image []byte) string {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)
}
