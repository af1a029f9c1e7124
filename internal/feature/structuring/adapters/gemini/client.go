// Package gemini provides a Google Gemini implementation of the structuring Generator.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"tend_backend/internal/feature/structuring/usecase"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Config configures the Gemini client.
type Config struct {
	// APIKey selects the Gemini Developer API. When empty the client falls back to
	// the environment (GOOGLE_API_KEY, or Vertex AI via GOOGLE_GENAI_USE_VERTEXAI).
	APIKey     string
	Model      string
	HTTPClient *http.Client
	// BaseURL overrides the API endpoint.
	BaseURL string
}

// GeminiGenerator asks Gemini for JSON answers.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// Compile-time check to ensure GeminiGenerator implements Generator.
var _ usecase.Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a GeminiGenerator.
func NewGeminiGenerator(ctx context.Context, cfg Config) (*GeminiGenerator, error) {
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.APIKey != "" {
		cc.Backend = genai.BackendGeminiAPI
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate sends p and returns the text of the first candidate.
func (g *GeminiGenerator) Generate(ctx context.Context, p usecase.Prompt) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(p.User), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(p.System, genai.RoleUser),
		Temperature:       genai.Ptr(p.Temperature),
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini returned no text")
	}
	return text, nil
}
