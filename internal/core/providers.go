package core

import "context"

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type AIProvider interface {
	Generator
	Chat(ctx context.Context, history []Message) (Message, error)
}

// ModelLister is implemented by providers that can enumerate their models.
type ModelLister interface {
	Models(ctx context.Context) ([]Model, error)
}

type DocumentSource interface {
	ExtractText(ctx context.Context, path string) (string, error)
}
