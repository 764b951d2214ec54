package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sandevgo/askfolio/internal/core"
	"github.com/sandevgo/askfolio/internal/service/assistant"
	"github.com/sandevgo/askfolio/pkg/log"
)

const defaultSessionID = "mcp-default"

// Sessions is what the tools need from the session manager.
type Sessions interface {
	Ask(ctx context.Context, sessionID, question string) (assistant.Reply, error)
	Reset(sessionID string)
}

// Searcher exposes raw retrieval.
type Searcher interface {
	Search(ctx context.Context, query string) ([]assistant.Result, error)
}

// Server exposes the assistant as MCP tools over stdio.
type Server struct {
	mcp      *server.MCPServer
	sessions Sessions
	searcher Searcher
	in       io.Reader
	out      io.Writer
}

func NewServer(name, version string, sessions Sessions, searcher Searcher, in io.Reader, out io.Writer) *Server {
	s := &Server{
		mcp:      server.NewMCPServer("askfolio", version, server.WithToolCapabilities(false)),
		sessions: sessions,
		searcher: searcher,
		in:       in,
		out:      out,
	}

	s.mcp.AddTool(mcp.NewTool("ask_profile",
		mcp.WithDescription(fmt.Sprintf("Answer a question about %s's professional and personal profile.", name)),
		mcp.WithString("question", mcp.Required(), mcp.Description("The question to answer")),
		mcp.WithString("session_id", mcp.Description("Conversation to continue; follow-ups are resolved against it")),
	), s.handleAsk)

	s.mcp.AddTool(mcp.NewTool("reset_conversation",
		mcp.WithDescription("Forget the conversation history of a session"),
		mcp.WithString("session_id", mcp.Description("Conversation to clear")),
	), s.handleReset)

	s.mcp.AddTool(mcp.NewTool("search_profile",
		mcp.WithDescription(fmt.Sprintf("Return the passages of %s's documents most similar to a query", name)),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search text")),
	), s.handleSearch)

	return s
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting mcp stdio server")
	err := server.NewStdioServer(s.mcp).Listen(ctx, s.in, s.out)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return nil
}

func (s *Server) handleAsk(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := req.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sessionID := req.GetString("session_id", defaultSessionID)

	reply, err := s.sessions.Ask(ctx, sessionID, question)
	if err != nil {
		if errors.Is(err, core.ErrEmptyQuestion) {
			return mcp.NewToolResultError("question must not be empty"), nil
		}
		log.FromCtx(ctx).Error().Err(err).Str("session", sessionID).Msg("ask_profile failed")
		return mcp.NewToolResultError(core.ErrAnswerUnavailable.Error()), nil
	}
	return mcp.NewToolResultText(reply.Text), nil
}

func (s *Server) handleReset(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", defaultSessionID)
	s.sessions.Reset(sessionID)
	return mcp.NewToolResultText("Conversation cleared."), nil
}

func (s *Server) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results, err := s.searcher.Search(ctx, query)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("search_profile failed")
		return mcp.NewToolResultError(core.ErrAnswerUnavailable.Error()), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("No passages found."), nil
	}

	var sb strings.Builder
	for i, r := range results {
		fmt.Fprintf(&sb, "%d. [%.3f] %s #%d\n%s\n\n", i+1, r.Score, r.Passage.Source, r.Passage.Index, r.Passage.Content)
	}
	return mcp.NewToolResultText(strings.TrimSpace(sb.String())), nil
}
