package llm

import "github.com/sandevgo/askfolio/internal/core"

const (
	openAIBaseURL     = "https://api.openai.com"
	openRouterBaseURL = "https://openrouter.ai/api"
)

func bearer(baseURL, apiKey, model string) OpenAICompatibleConfig {
	return OpenAICompatibleConfig{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Model:      model,
		AuthHeader: "Authorization",
		AuthPrefix: "Bearer ",
	}
}

func NewOpenAI(apiKey, model string) *OpenAICompatible {
	return NewOpenAICompatible(bearer(openAIBaseURL, apiKey, model))
}

// NewOpenRouter identifies askfolio through OpenRouter's attribution headers.
func NewOpenRouter(apiKey, model string) *OpenAICompatible {
	cfg := bearer(openRouterBaseURL, apiKey, model)
	cfg.ExtraHeaders = map[string]string{
		"HTTP-Referer": core.AppRepositoryURL,
		"X-Title":      core.AppName,
	}
	return NewOpenAICompatible(cfg)
}

// NewCustomOpenAI talks to any server exposing the OpenAI chat API (vLLM, LM Studio, llama-server).
func NewCustomOpenAI(baseURL, apiKey, model string) *OpenAICompatible {
	return NewOpenAICompatible(bearer(baseURL, apiKey, model))
}
