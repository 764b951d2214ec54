package rag

import (
	"context"
	"fmt"

	"github.com/sandevgo/askfolio/internal/core"
	"github.com/sandevgo/askfolio/pkg/log"
	"github.com/sandevgo/askfolio/pkg/retry"
)

type EmbedderConfig interface {
	core.ProviderConfig
	core.EmbeddingConfig
}

// NewEmbedder picks the embedding backend. Credentials are shared with the
// chat providers of the same name.
func NewEmbedder(ctx context.Context, cfg EmbedderConfig, maxRetries int) (core.Embedder, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.GetEmbeddingProvider()).
		Str("model", cfg.GetEmbeddingModel()).
		Msg("starting embedding provider")

	var (
		e   core.Embedder
		err error
	)
	switch cfg.GetEmbeddingProvider() {
	case "openai":
		e = NewOpenAIEmbedder("https://api.openai.com", cfg.GetOpenAIAPIKey(), cfg.GetEmbeddingModel())
	case "ollama":
		e = NewOpenAIEmbedder(cfg.GetOllamaBaseURL(), cfg.GetOllamaAPIKey(), cfg.GetEmbeddingModel())
	case "custom":
		e = NewOpenAIEmbedder(cfg.GetCustomOpenAIBaseURL(), cfg.GetCustomOpenAIAPIKey(), cfg.GetEmbeddingModel())
	case "gemini":
		e, err = NewGeminiEmbedder(ctx, cfg.GetGeminiAPIKey(), cfg.GetEmbeddingModel())
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.GetEmbeddingProvider())
	}
	if err != nil {
		return nil, err
	}

	if maxRetries > 0 {
		e = NewRetryingEmbedder(e, retry.NewRetrier(retry.NewConfig(maxRetries)))
	}
	return e, nil
}
