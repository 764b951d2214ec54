package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/askfolio/internal/core"
	"github.com/sandevgo/askfolio/internal/service/memory"
)

// Rewriter turns a follow-up into a question that stands on its own.
type Rewriter struct {
	gen core.Generator
}

func NewRewriter(gen core.Generator) *Rewriter {
	return &Rewriter{gen: gen}
}

// Rewrite passes the question through untouched when there is no history.
func (r *Rewriter) Rewrite(ctx context.Context, conv memory.Conversation, question string) (string, error) {
	if conv.IsEmpty() {
		return question, nil
	}

	prompt := fill(condenseTemplate, map[string]string{
		"chat_history": conv.Render(),
		"question":     question,
	})

	out, err := r.gen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("rewrite question: %w: %w", core.ErrGenerationFailed, err)
	}

	standalone := strings.TrimSpace(out)
	if standalone == "" {
		return question, nil
	}
	return standalone, nil
}
