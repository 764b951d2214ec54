package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/askfolio/pkg/log"
)

type ProviderConfig struct {
	Provider   string `env:"LLM_PROVIDER" envDefault:"openai"`
	Model      string `env:"LLM_MODEL" envDefault:"gpt-3.5-turbo"`
	MaxRetries int    `env:"LLM_MAX_RETRIES" envDefault:"0"`

	EmbeddingProvider string `env:"EMBEDDING_PROVIDER" envDefault:"openai"`
	EmbeddingModel    string `env:"EMBEDDING_MODEL" envDefault:"text-embedding-ada-002"`

	OpenAIAPIKey        string `env:"OPENAI_API_KEY" secret:"true"`
	AnthropicAPIKey     string `env:"ANTHROPIC_API_KEY" secret:"true"`
	OpenRouterAPIKey    string `env:"OPENROUTER_API_KEY" secret:"true"`
	OllamaBaseURL       string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaAPIKey        string `env:"OLLAMA_API_KEY" secret:"true"`
	CustomOpenAIBaseURL string `env:"CUSTOM_OPENAI_BASE_URL"`
	CustomOpenAIAPIKey  string `env:"CUSTOM_OPENAI_API_KEY" secret:"true"`
	GeminiAPIKey        string `env:"GEMINI_API_KEY" secret:"true"`
}

func NewProviderConfig(ctx context.Context) *ProviderConfig {
	c, err := LoadProviderConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Provider config")
	}
	return c
}

func LoadProviderConfig() (*ProviderConfig, error) {
	c := &ProviderConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c ProviderConfig) GetProvider() string            { return c.Provider }
func (c ProviderConfig) GetModel() string               { return c.Model }
func (c ProviderConfig) GetAnthropicAPIKey() string     { return c.AnthropicAPIKey }
func (c ProviderConfig) GetOpenAIAPIKey() string        { return c.OpenAIAPIKey }
func (c ProviderConfig) GetOpenRouterAPIKey() string    { return c.OpenRouterAPIKey }
func (c ProviderConfig) GetOllamaAPIKey() string        { return c.OllamaAPIKey }
func (c ProviderConfig) GetOllamaBaseURL() string       { return c.OllamaBaseURL }
func (c ProviderConfig) GetCustomOpenAIBaseURL() string { return c.CustomOpenAIBaseURL }
func (c ProviderConfig) GetCustomOpenAIAPIKey() string  { return c.CustomOpenAIAPIKey }
func (c ProviderConfig) GetGeminiAPIKey() string        { return c.GeminiAPIKey }
func (c ProviderConfig) GetEmbeddingProvider() string   { return c.EmbeddingProvider }
func (c ProviderConfig) GetEmbeddingModel() string      { return c.EmbeddingModel }
