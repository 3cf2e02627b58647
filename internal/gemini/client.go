// Package gemini implements the model capability on Google's Gemini API.
// Gemini handles every content kind, including audio and video, as inline
// multimodal parts.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"veracity/internal/analysis"
)

const (
	DefaultModel   = "gemini-1.5-flash"
	DefaultTimeout = 360 * time.Second
)

// Client calls the Gemini API with a fixed model and API key.
type Client struct {
	apiKey  string
	model   string
	timeout time.Duration
}

// New creates a Gemini client. The API key is required; the model defaults
// to DefaultModel.
func New(apiKey, model string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini API key is empty")
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		timeout: DefaultTimeout,
	}, nil
}

// Generate sends one generation request and returns the raw reply text.
func (c *Client) Generate(ctx context.Context, p analysis.Prompt) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cl, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", fmt.Errorf("gemini: create client: %w", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(c.model)
	// Deterministic as far as the API allows, and ask for JSON directly.
	// The extractor still tolerates prose and fenced replies.
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(p.System)},
	}

	var parts []genai.Part
	if p.Text != "" {
		parts = append(parts, genai.Text(p.Text))
	}
	for _, mp := range p.Media {
		parts = append(parts, &genai.Blob{MIMEType: mp.MIMEType, Data: mp.Data})
	}
	if len(parts) == 0 {
		return "", errors.New("gemini: prompt has no user parts")
	}

	slog.Debug("gemini: sending request", "model", c.model, "parts", len(parts))

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini: generate: %w", err)
	}

	txt := firstText(resp)
	if txt == "" {
		return "", errors.New("gemini: empty response")
	}
	return txt, nil
}

// firstText returns the first text part of the first candidate that has one.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
