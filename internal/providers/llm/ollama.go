package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sandevgo/askfolio/internal/core"
)

// /api/tags does not report a context window.
const ollamaContextLength = 8192

// Ollama chats through the OpenAI-compatible endpoint and lists pulled models
// from the native API.
type Ollama struct {
	*OpenAICompatible
}

func NewOllama(baseURL, apiKey, model string) *Ollama {
	return &Ollama{OpenAICompatible: NewOpenAICompatible(bearer(baseURL, apiKey, model))}
}

func (o *Ollama) Models(ctx context.Context) ([]core.Model, error) {
	var tags struct {
		Models []struct {
			Name    string `json:"name"`
			Details struct {
				ParameterSize string `json:"parameter_size"`
			} `json:"details"`
		} `json:"models"`
	}
	if err := o.doJSON(ctx, http.MethodGet, "/api/tags", nil, o.headers(), &tags); err != nil {
		return nil, fmt.Errorf("ollama not available: %w", err)
	}

	models := make([]core.Model, 0, len(tags.Models))
	for _, m := range tags.Models {
		name := m.Name
		if m.Details.ParameterSize != "" {
			name = fmt.Sprintf("%s (%s)", m.Name, m.Details.ParameterSize)
		}
		models = append(models, core.Model{
			ID:            m.Name,
			Name:          name,
			ContextLength: ollamaContextLength,
		})
	}
	return models, nil
}
