package assistant

import (
	"context"
	"strings"
	"unicode"

	"github.com/stretchr/testify/mock"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type mockEmbedder struct {
	mock.Mock
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if v := args.Get(0); v != nil {
		return v.([]float32), args.Error(1)
	}
	return nil, args.Error(1)
}

// bagEmbedder counts vocabulary words, enough for cosine to prefer passages
// sharing terms with the query.
type bagEmbedder struct {
	vocab []string
}

func (b bagEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	vec := make([]float32, len(b.vocab)+1)
	vec[len(b.vocab)] = 0.01
	for _, w := range words {
		for i, v := range b.vocab {
			if w == v {
				vec[i]++
			}
		}
	}
	return vec, nil
}
