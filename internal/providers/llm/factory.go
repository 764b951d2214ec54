package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/askfolio/internal/core"
	"github.com/sandevgo/askfolio/pkg/log"
	"github.com/sandevgo/askfolio/pkg/retry"
)

// NewProvider creates the appropriate AIProvider based on configuration.
// maxRetries > 0 wraps it in a Retrying decorator.
func NewProvider(ctx context.Context, cfg core.ProviderConfig, maxRetries int) (core.AIProvider, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.GetProvider()).
		Str("model", cfg.GetModel()).
		Msg("starting llm provider")

	var (
		p   core.AIProvider
		err error
	)
	switch cfg.GetProvider() {
	case "openai":
		p = NewOpenAI(cfg.GetOpenAIAPIKey(), cfg.GetModel())
	case "anthropic":
		p = NewAnthropic(cfg.GetAnthropicAPIKey(), cfg.GetModel())
	case "openrouter":
		p = NewOpenRouter(cfg.GetOpenRouterAPIKey(), cfg.GetModel())
	case "ollama":
		p = NewOllama(cfg.GetOllamaBaseURL(), cfg.GetOllamaAPIKey(), cfg.GetModel())
	case "custom":
		p = NewCustomOpenAI(cfg.GetCustomOpenAIBaseURL(), cfg.GetCustomOpenAIAPIKey(), cfg.GetModel())
	case "gemini":
		p, err = NewGemini(ctx, cfg.GetGeminiAPIKey(), cfg.GetModel())
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.GetProvider())
	}
	if err != nil {
		return nil, err
	}

	if maxRetries > 0 {
		p = NewRetrying(p, retry.NewRetrier(retry.NewConfig(maxRetries)))
	}
	return p, nil
}
