package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sandevgo/askfolio/internal/core"
	"github.com/sandevgo/askfolio/internal/service/assistant"
	"github.com/sandevgo/askfolio/internal/service/memory"
	"github.com/sandevgo/askfolio/pkg/log"
)

const maxBodyBytes = 1 << 20

// Asker answers against a conversation the caller supplies.
type Asker interface {
	Ask(ctx context.Context, question string, conv memory.Conversation) (assistant.Reply, memory.Conversation, error)
}

// Sessions keeps conversations server side, keyed by session id.
type Sessions interface {
	Ask(ctx context.Context, sessionID, question string) (assistant.Reply, error)
	Reset(sessionID string)
}

type askRequest struct {
	Question  string      `json:"question" validate:"required,max=2000"`
	History   []core.Turn `json:"history" validate:"omitempty,max=100,dive"`
	SessionID string      `json:"session_id" validate:"omitempty,max=128"`
}

type askResponse struct {
	assistant.Reply
	SessionID string      `json:"session_id,omitempty"`
	History   []core.Turn `json:"history,omitempty"`
}

type resetRequest struct {
	SessionID string `json:"session_id" validate:"required,max=128"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	asker    Asker
	sessions Sessions
	metrics  *Metrics
	validate *validator.Validate
}

// ask answers statelessly from the posted history, or within a server-side
// session when session_id is set.
func (h *handlers) ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if !h.decode(w, r, &req) {
		return
	}

	var (
		reply assistant.Reply
		resp  askResponse
		err   error
	)
	if req.SessionID != "" {
		reply, err = h.sessions.Ask(r.Context(), req.SessionID, req.Question)
		resp.SessionID = req.SessionID
	} else {
		var conv memory.Conversation
		reply, conv, err = h.asker.Ask(r.Context(), req.Question, memory.New(req.History...))
		resp.History = conv.Turns()
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.metrics.Answers.WithLabelValues(reply.Route).Inc()
	if reply.Fallback {
		h.metrics.Fallbacks.Inc()
	}

	resp.Reply = reply
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) reset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.sessions.Reset(req.SessionID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: formatValidationError(err)})
		return false
	}
	return true
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrEmptyQuestion):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "question is required"})
	case errors.Is(err, core.ErrAnswerUnavailable):
		log.FromCtx(r.Context()).Error().Err(err).Msg("answer unavailable")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: core.ErrAnswerUnavailable.Error()})
	default:
		log.FromCtx(r.Context()).Error().Err(err).Msg("ask failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func formatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s long", field, e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, "; ")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
