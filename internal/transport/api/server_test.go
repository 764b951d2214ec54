package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/askfolio/internal/core"
	"github.com/sandevgo/askfolio/internal/service/assistant"
	"github.com/sandevgo/askfolio/internal/service/memory"
)

type fakeAsker struct {
	err      error
	fallback bool
	seen     []int
}

func (f *fakeAsker) Ask(ctx context.Context, q string, conv memory.Conversation) (assistant.Reply, memory.Conversation, error) {
	f.seen = append(f.seen, conv.Len())
	if f.err != nil {
		return assistant.Reply{}, conv, f.err
	}
	reply := assistant.Reply{Text: "re: " + q, Route: assistant.RouteRAG, Fallback: f.fallback}
	return reply, conv.Append(core.Turn{Question: q, Answer: reply.Text}), nil
}

type fakeSessions struct {
	asked []string
	reset []string
}

func (f *fakeSessions) Ask(ctx context.Context, sessionID, q string) (assistant.Reply, error) {
	f.asked = append(f.asked, sessionID+":"+q)
	return assistant.Reply{Text: "session answer", Route: assistant.RouteContact}, nil
}

func (f *fakeSessions) Reset(sessionID string) {
	f.reset = append(f.reset, sessionID)
}

func newTestServer(t *testing.T, asker Asker, sessions Sessions) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter([]string{"*"}, asker, sessions, NewMetrics("test")))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestAsk_Stateless(t *testing.T) {
	asker := &fakeAsker{}
	srv := newTestServer(t, asker, &fakeSessions{})

	resp := post(t, srv, "/api/ask", `{
		"question": "and before that?",
		"history": [{"question": "where does she work?", "answer": "Acme"}]
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out askResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "re: and before that?", out.Text)
	assert.Equal(t, assistant.RouteRAG, out.Route)
	assert.Empty(t, out.SessionID)
	require.Len(t, out.History, 2)
	assert.Equal(t, "Acme", out.History[0].Answer)
	assert.Equal(t, []int{1}, asker.seen)
}

func TestAsk_WithSession(t *testing.T) {
	sessions := &fakeSessions{}
	srv := newTestServer(t, &fakeAsker{}, sessions)

	resp := post(t, srv, "/api/ask", `{"question": "email?", "session_id": "abc"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out askResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "session answer", out.Text)
	assert.Equal(t, "abc", out.SessionID)
	assert.Empty(t, out.History)
	assert.Equal(t, []string{"abc:email?"}, sessions.asked)
}

func TestAsk_Errors(t *testing.T) {
	tests := []struct {
		name     string
		asker    *fakeAsker
		body     string
		status   int
		contains string
	}{
		{"missing question", &fakeAsker{}, `{}`, http.StatusBadRequest, "question is required"},
		{"not json", &fakeAsker{}, `nope`, http.StatusBadRequest, "invalid JSON body"},
		{"unknown field", &fakeAsker{}, `{"question":"q","temperature":1}`, http.StatusBadRequest, "invalid JSON body"},
		{"too long", &fakeAsker{}, fmt.Sprintf(`{"question":%q}`, strings.Repeat("a", 2001)), http.StatusBadRequest, "at most 2000"},
		{"blank question", &fakeAsker{err: core.ErrEmptyQuestion}, `{"question":"  "}`, http.StatusBadRequest, "question is required"},
		{
			"pipeline failure",
			&fakeAsker{err: fmt.Errorf("%w: %w", core.ErrAnswerUnavailable, errors.New("secret upstream detail"))},
			`{"question":"q"}`, http.StatusBadGateway, "answer unavailable",
		},
		{"unexpected", &fakeAsker{err: errors.New("boom")}, `{"question":"q"}`, http.StatusInternalServerError, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.asker, &fakeSessions{})
			resp := post(t, srv, "/api/ask", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Contains(t, string(body), tt.contains)
			assert.NotContains(t, string(body), "secret upstream detail")
		})
	}
}

func TestReset(t *testing.T) {
	sessions := &fakeSessions{}
	srv := newTestServer(t, &fakeAsker{}, sessions)

	resp := post(t, srv, "/api/reset", `{"session_id":"abc"}`)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, []string{"abc"}, sessions.reset)

	resp = post(t, srv, "/api/reset", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, &fakeAsker{fallback: true}, &fakeSessions{})

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	post(t, srv, "/api/ask", `{"question":"q"}`)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `test_answers_total{route="rag"} 1`)
	assert.Contains(t, text, `test_answer_fallbacks_total 1`)
	assert.Contains(t, text, `test_http_requests_total{method="POST",route="/api/ask",status="200"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, &fakeAsker{}, &fakeSessions{})

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/ask", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://portfolio.example")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
