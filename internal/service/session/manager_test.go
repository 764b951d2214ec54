package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/askfolio/internal/core"
	"github.com/sandevgo/askfolio/internal/service/assistant"
	"github.com/sandevgo/askfolio/internal/service/memory"
)

// echoAsker answers with the question and appends a turn for rag routes.
type echoAsker struct {
	mu    sync.Mutex
	calls int
	fail  bool
}

func (e *echoAsker) Ask(ctx context.Context, q string, conv memory.Conversation) (assistant.Reply, memory.Conversation, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()

	if e.fail {
		return assistant.Reply{}, conv, core.ErrAnswerUnavailable
	}
	if q == "email" {
		return assistant.Reply{Text: "contact", Route: assistant.RouteContact}, conv, nil
	}
	reply := assistant.Reply{
		Text:    "re: " + q,
		Route:   assistant.RouteRAG,
		Sources: []core.Passage{{Content: "src " + q}},
	}
	return reply, conv.Append(core.Turn{Question: q, Answer: reply.Text}), nil
}

type mockTranscript struct {
	mock.Mock
}

func (m *mockTranscript) AddEntry(ctx context.Context, e core.TranscriptEntry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockTranscript) GetEntries(ctx context.Context, limit int) ([]core.TranscriptEntry, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]core.TranscriptEntry), args.Error(1)
}

func TestManager_SessionsAreIndependent(t *testing.T) {
	m := NewManager(&echoAsker{}, nil)
	ctx := context.Background()

	_, err := m.Ask(ctx, "a", "one")
	require.NoError(t, err)
	_, err = m.Ask(ctx, "a", "two")
	require.NoError(t, err)
	_, err = m.Ask(ctx, "b", "three")
	require.NoError(t, err)

	assert.Equal(t, 2, m.Conversation("a").Len())
	assert.Equal(t, 1, m.Conversation("b").Len())
	assert.Equal(t, []core.Passage{{Content: "src two"}}, m.LastSources("a"))
}

func TestManager_FailureKeepsConversation(t *testing.T) {
	asker := &echoAsker{}
	m := NewManager(asker, nil)
	ctx := context.Background()

	_, err := m.Ask(ctx, "s", "one")
	require.NoError(t, err)

	asker.fail = true
	_, err = m.Ask(ctx, "s", "two")
	assert.ErrorIs(t, err, core.ErrAnswerUnavailable)
	assert.Equal(t, 1, m.Conversation("s").Len())
}

func TestManager_Reset(t *testing.T) {
	m := NewManager(&echoAsker{}, nil)
	_, err := m.Ask(context.Background(), "s", "one")
	require.NoError(t, err)

	m.Reset("s")
	assert.True(t, m.Conversation("s").IsEmpty())
	assert.Empty(t, m.LastSources("s"))
}

func TestManager_RecordsTranscript(t *testing.T) {
	repo := &mockTranscript{}
	repo.On("AddEntry", mock.Anything, mock.MatchedBy(func(e core.TranscriptEntry) bool {
		return e.SessionID == "s" && e.Question == "email" && e.Answer == "contact" && e.Route == assistant.RouteContact
	})).Return(nil).Once()
	repo.On("AddEntry", mock.Anything, mock.MatchedBy(func(e core.TranscriptEntry) bool {
		return e.Question == "hi" && e.Route == assistant.RouteRAG
	})).Return(errors.New("disk full")).Once()

	m := NewManager(&echoAsker{}, repo)
	ctx := context.Background()

	reply, err := m.Ask(ctx, "s", "email")
	require.NoError(t, err)
	assert.Equal(t, "contact", reply.Text)
	assert.True(t, m.Conversation("s").IsEmpty())

	// transcript errors never fail the answer
	_, err = m.Ask(ctx, "s", "hi")
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestManager_ConcurrentAsks(t *testing.T) {
	m := NewManager(&echoAsker{}, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Ask(ctx, "shared", "q")
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, m.Conversation("shared").Len())
}

func TestManager_Prune(t *testing.T) {
	m := NewManager(&echoAsker{}, nil)
	m.Reset("old")
	time.Sleep(5 * time.Millisecond)

	assert.Equal(t, 1, m.Prune(time.Millisecond))
	assert.Equal(t, 0, m.Len())
}

func TestManager_MaxSessionsEvictsLeastRecent(t *testing.T) {
	m := NewManager(&echoAsker{}, nil, WithMaxSessions(2))
	ctx := context.Background()

	_, err := m.Ask(ctx, "a", "first?")
	require.NoError(t, err)
	_, err = m.Ask(ctx, "b", "second?")
	require.NoError(t, err)

	base := time.Now()
	m.sessions["a"].seen = base
	m.sessions["b"].seen = base.Add(-time.Minute)

	_, err = m.Ask(ctx, "c", "third?")
	require.NoError(t, err)

	assert.Equal(t, 2, m.Len())
	assert.Contains(t, m.sessions, "a")
	assert.Contains(t, m.sessions, "c")
	assert.NotContains(t, m.sessions, "b")
	assert.Equal(t, 1, m.Conversation("a").Len())
}

func TestManager_ManyClientSessionsStayCapped(t *testing.T) {
	m := NewManager(&echoAsker{}, nil, WithMaxSessions(10))
	for i := range 100 {
		m.Reset(fmt.Sprintf("client-%d", i))
	}
	assert.Equal(t, 10, m.Len())

	unbounded := NewManager(&echoAsker{}, nil)
	for i := range 100 {
		unbounded.Reset(fmt.Sprintf("client-%d", i))
	}
	assert.Equal(t, 100, unbounded.Len())
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
