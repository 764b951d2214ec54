package memory

import (
	"strings"

	"github.com/sandevgo/askfolio/internal/core"
)

// Conversation is the chronological list of answered turns for one session.
// It is a value: Append returns a new conversation and never touches the receiver.
type Conversation struct {
	turns []core.Turn
}

func New(turns ...core.Turn) Conversation {
	return Conversation{turns: append([]core.Turn(nil), turns...)}
}

// Reset returns the empty conversation a session starts over with.
func Reset() Conversation {
	return Conversation{}
}

func (c Conversation) Append(t core.Turn) Conversation {
	turns := make([]core.Turn, len(c.turns), len(c.turns)+1)
	copy(turns, c.turns)
	return Conversation{turns: append(turns, t)}
}

func (c Conversation) Turns() []core.Turn {
	return append([]core.Turn(nil), c.turns...)
}

func (c Conversation) Len() int {
	return len(c.turns)
}

func (c Conversation) IsEmpty() bool {
	return len(c.turns) == 0
}

// Last returns at most n most recent turns. n <= 0 keeps everything.
func (c Conversation) Last(n int) Conversation {
	if n <= 0 || n >= len(c.turns) {
		return c
	}
	return Conversation{turns: c.turns[len(c.turns)-n:]}
}

// Render formats the history the way prompts expect it:
//
//	Human: <question>
//	Assistant: <answer>
func (c Conversation) Render() string {
	var sb strings.Builder
	for i, t := range c.turns {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("Human: ")
		sb.WriteString(t.Question)
		sb.WriteString("\nAssistant: ")
		sb.WriteString(t.Answer)
	}
	return sb.String()
}

// Messages converts turns into chat messages, oldest first.
func (c Conversation) Messages() []core.Message {
	msgs := make([]core.Message, 0, len(c.turns)*2)
	for _, t := range c.turns {
		msgs = append(msgs,
			core.Message{Role: core.RoleUser, Content: t.Question},
			core.Message{Role: core.RoleAssistant, Content: t.Answer},
		)
	}
	return msgs
}
