package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/askfolio/internal/config"
	"github.com/sandevgo/askfolio/internal/core"
	"github.com/sandevgo/askfolio/internal/service/memory"
	"github.com/sandevgo/askfolio/pkg/log"
)

type Reply struct {
	Text       string         `json:"answer"`
	Route      string         `json:"route"`
	Standalone string         `json:"standalone_question,omitempty"`
	Sources    []core.Passage `json:"sources,omitempty"`
	Fallback   bool           `json:"fallback,omitempty"`
}

type Options struct {
	// HistoryWindow limits how many recent turns prompts see. Zero means all.
	HistoryWindow int
}

// Assistant answers questions about one profile. It holds no per-session
// state: the conversation is passed in and the updated one handed back.
type Assistant struct {
	shortcuts []shortcut
	rewriter  *Rewriter
	retriever *Retriever
	answerer  *Answerer
	opts      Options
}

func New(gen core.Generator, retriever *Retriever, profile config.Profile, opts Options) *Assistant {
	return &Assistant{
		shortcuts: shortcutsFor(profile),
		rewriter:  NewRewriter(gen),
		retriever: retriever,
		answerer:  NewAnswerer(gen, profile),
		opts:      opts,
	}
}

// Ask runs one question through shortcuts or the retrieval pipeline. On any
// error the input conversation is returned as is.
func (a *Assistant) Ask(ctx context.Context, question string, conv memory.Conversation) (Reply, memory.Conversation, error) {
	logger := log.FromCtx(ctx)

	question = strings.TrimSpace(question)
	if question == "" {
		return Reply{}, conv, core.ErrEmptyQuestion
	}

	if s, ok := match(a.shortcuts, question); ok {
		logger.Debug().Str("route", s.route).Msg("shortcut answer")
		return Reply{Text: s.answer, Route: s.route}, conv, nil
	}

	history := conv.Last(a.opts.HistoryWindow)

	standalone, err := a.rewriter.Rewrite(ctx, history, question)
	if err != nil {
		return Reply{}, conv, fmt.Errorf("%w: %w", core.ErrAnswerUnavailable, err)
	}
	logger.Debug().Str("standalone", standalone).Msg("question rewritten")

	results, err := a.retriever.Retrieve(ctx, standalone)
	if err != nil {
		return Reply{}, conv, fmt.Errorf("%w: %w", core.ErrAnswerUnavailable, err)
	}
	passages := make([]core.Passage, 0, len(results))
	for _, r := range results {
		passages = append(passages, r.Passage)
	}

	ans, err := a.answerer.Answer(ctx, standalone, passages, history)
	if err != nil {
		return Reply{}, conv, fmt.Errorf("%w: %w", core.ErrAnswerUnavailable, err)
	}
	if ans.Fallback {
		logger.Debug().Msg("model hedged, using fallback message")
	}

	reply := Reply{
		Text:       ans.Text,
		Route:      RouteRAG,
		Standalone: standalone,
		Sources:    ans.Sources,
		Fallback:   ans.Fallback,
	}
	return reply, conv.Append(core.Turn{Question: question, Answer: ans.Text}), nil
}

// Search exposes raw retrieval for diagnostics.
func (a *Assistant) Search(ctx context.Context, query string) ([]Result, error) {
	return a.retriever.Retrieve(ctx, query)
}
