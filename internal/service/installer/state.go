package installer

import "strings"

// Env keys the wizard writes.
const (
	keyProvider          = "LLM_PROVIDER"
	keyModel             = "LLM_MODEL"
	keyEmbeddingProvider = "EMBEDDING_PROVIDER"
	keyDocuments         = "ASKFOLIO_DOCUMENTS"
	keyEnableTelegram    = "ENABLE_TELEGRAM"
	keyTelegramToken     = "TELEGRAM_TOKEN"
	keyOllamaBaseURL     = "OLLAMA_BASE_URL"
	keyCustomBaseURL     = "CUSTOM_OPENAI_BASE_URL"
)

type InstallState struct {
	EnvVars map[string]string
	// ProfileName is written to profile.yaml, not to .env.
	ProfileName string
}

func NewInstallState() *InstallState {
	return &InstallState{
		EnvVars: make(map[string]string),
	}
}

func (s *InstallState) provider() string {
	return strings.ToLower(s.EnvVars[keyProvider])
}

func (s *InstallState) embeddingProvider() string {
	return strings.ToLower(s.EnvVars[keyEmbeddingProvider])
}

// uses reports whether the chat or embedding provider is p.
func (s *InstallState) uses(p string) bool {
	return s.provider() == p || s.embeddingProvider() == p
}

// apiKeyVar maps a provider to the env key holding its API key.
func apiKeyVar(provider string) (key, title, placeholder string, optional bool) {
	switch provider {
	case "anthropic":
		return "ANTHROPIC_API_KEY", "Anthropic API Key", "sk-ant-...", false
	case "openai":
		return "OPENAI_API_KEY", "OpenAI API Key", "sk-...", false
	case "openrouter":
		return "OPENROUTER_API_KEY", "OpenRouter API Key", "sk-or-v1-...", false
	case "gemini":
		return "GEMINI_API_KEY", "Gemini API Key", "AIza...", false
	case "ollama":
		return "OLLAMA_API_KEY", "Ollama API Key", "Optional - press Enter to skip", true
	case "custom":
		return "CUSTOM_OPENAI_API_KEY", "Custom API Key", "Optional - press Enter to skip", true
	}
	return "", "", "", false
}

func defaultModel(provider string) string {
	switch provider {
	case "anthropic":
		return "claude-3-5-haiku-latest"
	case "openrouter":
		return "openai/gpt-3.5-turbo"
	case "ollama":
		return "llama3"
	case "gemini":
		return "gemini-1.5-flash"
	}
	return "gpt-3.5-turbo"
}

func defaultEmbeddingModel(provider string) string {
	switch provider {
	case "ollama":
		return "nomic-embed-text"
	case "gemini":
		return "gemini-embedding-001"
	}
	return "text-embedding-ada-002"
}
