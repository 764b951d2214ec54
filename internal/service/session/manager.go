package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandevgo/askfolio/internal/core"
	"github.com/sandevgo/askfolio/internal/service/assistant"
	"github.com/sandevgo/askfolio/internal/service/memory"
	"github.com/sandevgo/askfolio/pkg/log"
)

type Asker interface {
	Ask(ctx context.Context, question string, conv memory.Conversation) (assistant.Reply, memory.Conversation, error)
}

type session struct {
	// mu serializes asks within one session.
	mu      sync.Mutex
	conv    memory.Conversation
	sources []core.Passage
	seen    time.Time
}

// Manager owns one conversation per chat session on behalf of transports.
type Manager struct {
	asker       Asker
	repo        core.TranscriptRepository
	maxSessions int

	mu       sync.Mutex
	sessions map[string]*session
}

type Option func(*Manager)

// WithMaxSessions caps live sessions. Opening one more evicts the session
// seen least recently. Zero or less means no cap.
func WithMaxSessions(n int) Option {
	return func(m *Manager) {
		m.maxSessions = n
	}
}

// NewManager builds a manager. repo may be nil to skip the transcript.
func NewManager(asker Asker, repo core.TranscriptRepository, opts ...Option) *Manager {
	m := &Manager{
		asker:    asker,
		repo:     repo,
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func NewID() string {
	return uuid.NewString()
}

func (m *Manager) get(id string) *session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
			m.evictOldest()
		}
		s = &session{conv: memory.Reset()}
		m.sessions[id] = s
	}
	s.seen = time.Now()
	return s
}

// evictOldest expects m.mu held.
func (m *Manager) evictOldest() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, s := range m.sessions {
		if oldestID == "" || s.seen.Before(oldest) {
			oldestID, oldest = id, s.seen
		}
	}
	delete(m.sessions, oldestID)
}

// Ask answers within the session's conversation and stores the result.
// Shortcut answers are written to the transcript but not to the conversation.
func (m *Manager) Ask(ctx context.Context, sessionID, question string) (assistant.Reply, error) {
	ctx = log.WithSession(ctx, sessionID)
	s := m.get(sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	reply, conv, err := m.asker.Ask(ctx, question, s.conv)
	if err != nil {
		return assistant.Reply{}, err
	}
	s.conv = conv
	s.sources = reply.Sources

	m.record(ctx, sessionID, question, reply)
	return reply, nil
}

func (m *Manager) record(ctx context.Context, sessionID, question string, reply assistant.Reply) {
	if m.repo == nil {
		return
	}
	err := m.repo.AddEntry(ctx, core.TranscriptEntry{
		SessionID: sessionID,
		Question:  question,
		Answer:    reply.Text,
		Route:     reply.Route,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to record transcript entry")
	}
}

func (m *Manager) Reset(sessionID string) {
	s := m.get(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conv = memory.Reset()
	s.sources = nil
}

func (m *Manager) LastSources(sessionID string) []core.Passage {
	s := m.get(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]core.Passage(nil), s.sources...)
}

func (m *Manager) Conversation(sessionID string) memory.Conversation {
	s := m.get(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conv
}

// Prune drops sessions idle for longer than ttl and reports how many went.
func (m *Manager) Prune(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-ttl)
	n := 0
	for id, s := range m.sessions {
		if s.seen.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
