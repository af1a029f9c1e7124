package di

import (
	"context"
	"log/slog"

	"tend_backend/internal/feature/structuring/adapters/gemini"
	"tend_backend/internal/feature/structuring/usecase"
	"tend_backend/internal/platform/config"
	platformhttp "tend_backend/internal/platform/http"
)

// NewStructurer builds the drafting usecase on a Gemini client with the tuned outbound HTTP client.
// Without llm.apikey the client falls back to the Gemini environment variables; when those
// are missing too, drafting answers 503 and the server still starts.
func NewStructurer(ctx context.Context, cfg config.LLMConfig, northStars usecase.NorthStarReader, relationships usecase.RelationshipLister) (*usecase.Structurer, error) {
	var gen usecase.Generator
	gemGen, err := gemini.NewGeminiGenerator(ctx, gemini.Config{
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		HTTPClient: platformhttp.NewHTTPClient(cfg.Timeout),
	})
	switch {
	case err == nil:
		gen = gemGen
	case cfg.APIKey == "":
		slog.Warn("no language model credentials, drafting endpoints are disabled", "error", err)
		gen = usecase.NotConfigured{}
	default:
		return nil, err
	}
	return usecase.NewStructurer(gen, northStars, relationships), nil
}
