package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type choice struct {
	label string
	value string
}

// SelectStep picks one value from a fixed list and stores it under envKey.
type SelectStep struct {
	title   string
	envKey  string
	choices []choice
	cursor  int
	skip    func(state *InstallState) bool
}

func NewProviderStep() Step {
	return &SelectStep{
		title:  "Select your AI Provider:",
		envKey: keyProvider,
		choices: []choice{
			{"OpenAI", "openai"},
			{"Anthropic", "anthropic"},
			{"OpenRouter", "openrouter"},
			{"Gemini", "gemini"},
			{"Ollama", "ollama"},
			{"Custom (OpenAI compatible)", "custom"},
		},
	}
}

// NewEmbeddingProviderStep covers only providers with an embeddings API.
func NewEmbeddingProviderStep() Step {
	return &SelectStep{
		title:  "Select the Embedding Provider:",
		envKey: keyEmbeddingProvider,
		choices: []choice{
			{"OpenAI", "openai"},
			{"Gemini", "gemini"},
			{"Ollama", "ollama"},
			{"Custom (OpenAI compatible)", "custom"},
		},
	}
}

func NewChannelStep() Step {
	return &SelectStep{
		title:  "Also run a Telegram bot with `askfolio serve`?",
		envKey: keyEnableTelegram,
		choices: []choice{
			{"No, HTTP API only", "false"},
			{"Yes, Telegram too", "true"},
		},
	}
}

func (s *SelectStep) Init() tea.Cmd {
	return nil
}

func (s *SelectStep) Skip(state *InstallState) bool {
	return s.skip != nil && s.skip(state)
}

func (s *SelectStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			state.EnvVars[s.envKey] = s.choices[s.cursor].value
			return nil, nil
		}
	}
	return s, nil
}

func (s *SelectStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString(s.title + "\n\n")
	for i, c := range s.choices {
		if s.cursor == i {
			b.WriteString(selStyle.Render(fmt.Sprintf("❯ %s", c.label)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("  %s", c.label)) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}
