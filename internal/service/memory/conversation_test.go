package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sandevgo/askfolio/internal/core"
)

func TestConversation_AppendDoesNotMutate(t *testing.T) {
	base := New(core.Turn{Question: "q1", Answer: "a1"})
	next := base.Append(core.Turn{Question: "q2", Answer: "a2"})

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, next.Len())

	// Appending twice to the same base must not share storage.
	other := base.Append(core.Turn{Question: "x", Answer: "y"})
	assert.Equal(t, "q2", next.Turns()[1].Question)
	assert.Equal(t, "x", other.Turns()[1].Question)
}

func TestConversation_TurnsIsACopy(t *testing.T) {
	c := New(core.Turn{Question: "q", Answer: "a"})
	turns := c.Turns()
	turns[0].Question = "changed"

	assert.Equal(t, "q", c.Turns()[0].Question)
}

func TestConversation_Render(t *testing.T) {
	assert.Equal(t, "", Reset().Render())

	c := New(
		core.Turn{Question: "Where did Jane study?", Answer: "MIT."},
		core.Turn{Question: "When?", Answer: "2015."},
	)
	assert.Equal(t, "Human: Where did Jane study?\nAssistant: MIT.\nHuman: When?\nAssistant: 2015.", c.Render())
}

func TestConversation_Last(t *testing.T) {
	c := New(
		core.Turn{Question: "1"},
		core.Turn{Question: "2"},
		core.Turn{Question: "3"},
	)

	assert.Equal(t, c, c.Last(0))
	assert.Equal(t, c, c.Last(5))
	assert.Equal(t, []core.Turn{{Question: "2"}, {Question: "3"}}, c.Last(2).Turns())
}

func TestConversation_Messages(t *testing.T) {
	c := New(core.Turn{Question: "q", Answer: "a"})
	assert.Equal(t, []core.Message{
		{Role: core.RoleUser, Content: "q"},
		{Role: core.RoleAssistant, Content: "a"},
	}, c.Messages())
}

func TestReset(t *testing.T) {
	assert.True(t, Reset().IsEmpty())
	assert.Empty(t, Reset().Turns())
}
