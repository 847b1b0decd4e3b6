package ollama

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/storefront-insights/captain/internal/providers"
)

// DefaultModel is used when OLLAMA_MODEL is not set
const DefaultModel = "mistral-small3.2:24b"

// DefaultHost is used when neither OLLAMA_URL nor OLLAMA_HOST is set
const DefaultHost = "http://localhost:11434"

// Ollama is a provider for a local Ollama server
type Ollama struct {
	host   string
	client *http.Client
}

// New returns a new Ollama provider
func New(host string) *Ollama {
	if host == "" {
		host = DefaultHost
	}
	return &Ollama{
		host:   host,
		client: &http.Client{},
	}
}

// AnalyzeImage sends the prompt with the base64 image to /api/generate
func (o *Ollama) AnalyzeImage(ctx context.Context, config providers.Config) (string, error) {
	requestBody, err := json.Marshal(map[string]interface{}{
		"model":  config.Model,
		"prompt": config.Prompt,
		"images": []string{base64.StdEncoding.EncodeToString(config.Image)},
		"stream": false,
		"options": map[string]interface{}{
			"temperature": config.Temperature,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.host+"/api/generate", bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(body))
	}

	var response struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	return response.Response, nil
}
