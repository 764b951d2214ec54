package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/askfolio/internal/config"
	"github.com/sandevgo/askfolio/internal/core"
	"github.com/sandevgo/askfolio/internal/service/memory"
)

type Answer struct {
	Text    string
	Sources []core.Passage
	// Fallback is set when the model hedged and Text was replaced.
	Fallback bool
}

type Answerer struct {
	gen     core.Generator
	profile config.Profile
}

func NewAnswerer(gen core.Generator, profile config.Profile) *Answerer {
	return &Answerer{gen: gen, profile: profile}
}

func (a *Answerer) Answer(ctx context.Context, question string, passages []core.Passage, conv memory.Conversation) (Answer, error) {
	prompt := a.Prompt(question, passages, conv)

	out, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		return Answer{}, fmt.Errorf("generate answer: %w: %w", core.ErrGenerationFailed, err)
	}

	text, fallback := a.normalize(out)
	return Answer{Text: text, Sources: passages, Fallback: fallback}, nil
}

// Prompt renders the grounded prompt. Passages keep retrieval order.
func (a *Answerer) Prompt(question string, passages []core.Passage, conv memory.Conversation) string {
	parts := make([]string, 0, len(passages))
	for _, p := range passages {
		parts = append(parts, p.Content)
	}

	return fill(answerTemplate, map[string]string{
		"name":         a.profile.Name,
		"unavailable":  a.profile.Fallback.Message,
		"context":      strings.Join(parts, "\n\n"),
		"chat_history": conv.Render(),
		"question":     question,
	})
}

// normalize swaps exact refusal phrases for the profile's unavailability message.
func (a *Answerer) normalize(raw string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	for _, phrase := range a.profile.Fallback.Phrases {
		if key == strings.ToLower(strings.TrimSpace(phrase)) {
			return a.profile.Fallback.Message, true
		}
	}
	return raw, false
}
