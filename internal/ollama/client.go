// Package ollama implements the model capability on a local Ollama server.
// Text and image requests are supported; audio and video are not, since the
// generate API has no inline parts for them.
package ollama

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"veracity/internal/analysis"
)

const (
	DefaultModel   = "llama3.2-vision"
	DefaultTimeout = 360 * time.Second
)

// Client wraps the Ollama API client
type Client struct {
	client  *api.Client
	model   string
	timeout time.Duration
}

// New creates a new Ollama client
func New(ollamaURL, model string) (*Client, error) {
	if ollamaURL == "" {
		ollamaURL = "http://localhost:11434"
	}
	if model == "" {
		model = DefaultModel
	}

	baseURL, err := url.Parse(ollamaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}

	client := api.NewClient(baseURL, http.DefaultClient)

	return &Client{
		client:  client,
		model:   model,
		timeout: DefaultTimeout,
	}, nil
}

// Generate sends one generation request and returns the raw reply text.
// Media parts are passed as images; a non-image part fails before any call
// reaches the server.
func (c *Client) Generate(ctx context.Context, p analysis.Prompt) (string, error) {
	var images []api.ImageData
	for _, mp := range p.Media {
		if !strings.HasPrefix(mp.MIMEType, "image/") {
			return "", fmt.Errorf("ollama provider does not support %s payloads", mp.MIMEType)
		}
		images = append(images, api.ImageData(mp.Data))
	}

	prompt := p.System
	if p.Text != "" {
		prompt += "\n\n" + p.Text
	}

	slog.Debug("ollama: sending request", "model", c.model, "timeout", c.timeout, "images", len(images))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := &api.GenerateRequest{
		Model:  c.model,
		Prompt: prompt,
		Images: images,
		Stream: new(bool), // false
	}

	var response strings.Builder
	err := c.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		response.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}

	result := strings.TrimSpace(response.String())
	if result == "" {
		return "", fmt.Errorf("ollama: empty response")
	}
	return result, nil
}
