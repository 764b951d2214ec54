package command

import (
	"context"

	"github.com/sandevgo/askfolio/internal/core"
)

type ResetCommand struct {
	sessions  core.SessionStore
	formatter *ResponseFormatter
}

func NewResetCommand(sessions core.SessionStore) *ResetCommand {
	return &ResetCommand{sessions: sessions, formatter: NewResponseFormatter()}
}

func (c *ResetCommand) Name() string {
	return "reset"
}

func (c *ResetCommand) Description() string {
	return "Clear the conversation"
}

func (c *ResetCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	c.sessions.Reset(sessionID)
	return c.formatter.Success("Conversation cleared"), nil
}

type SourcesCommand struct {
	sessions  core.SessionStore
	formatter *ResponseFormatter
}

func NewSourcesCommand(sessions core.SessionStore) *SourcesCommand {
	return &SourcesCommand{sessions: sessions, formatter: NewResponseFormatter()}
}

func (c *SourcesCommand) Name() string {
	return "sources"
}

func (c *SourcesCommand) Description() string {
	return "Show passages behind the last answer"
}

func (c *SourcesCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	sources := c.sessions.LastSources(sessionID)
	if len(sources) == 0 {
		return c.formatter.Info("No sources for the last answer"), nil
	}

	sections := []string{c.formatter.Info("Sources")}
	for i, p := range sources {
		sections = append(sections, c.formatter.Passage(i+1, p))
	}
	return c.formatter.Combine(sections...), nil
}
