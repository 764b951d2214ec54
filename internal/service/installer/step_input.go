package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputStep collects one free-text value. An empty entry takes the
// default, and is rejected when there is no default and the value is required.
type InputStep struct {
	input    textinput.Model
	title    string
	def      string
	required bool
	store    func(state *InstallState, value string)
	skip     func(state *InstallState) bool
}

func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 50
	ti.Placeholder = placeholder
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

func envStore(key string) func(*InstallState, string) {
	return func(state *InstallState, v string) {
		if v != "" {
			state.EnvVars[key] = v
		}
	}
}

func NewProfileNameStep() Step {
	return &InputStep{
		input:    newInput("Jane Doe", false),
		title:    "Whose portfolio will the assistant answer for?",
		required: true,
		store:    func(state *InstallState, v string) { state.ProfileName = v },
	}
}

func NewDocumentsStep() Step {
	def := "resume.pdf,profile.pdf"
	return &InputStep{
		input: newInput(def, false),
		title: "Documents to index (comma separated, relative to the runtime directory):",
		def:   def,
		store: envStore(keyDocuments),
	}
}

func NewOllamaURLStep() Step {
	def := "http://localhost:11434"
	return &InputStep{
		input: newInput(def, false),
		title: "Enter Ollama Base URL:",
		def:   def,
		store: envStore(keyOllamaBaseURL),
		skip:  func(state *InstallState) bool { return !state.uses("ollama") || state.EnvVars[keyOllamaBaseURL] != "" },
	}
}

func NewCustomURLStep() Step {
	return &InputStep{
		input:    newInput("https://api.example.com", false),
		title:    "Enter Custom OpenAI Base URL:",
		required: true,
		store:    envStore(keyCustomBaseURL),
		skip:     func(state *InstallState) bool { return !state.uses("custom") || state.EnvVars[keyCustomBaseURL] != "" },
	}
}

func NewTelegramTokenStep() Step {
	return &InputStep{
		input:    newInput("123456789:ABCDEF...", true),
		title:    "Enter your Telegram Bot Token:",
		required: true,
		store:    envStore(keyTelegramToken),
		skip:     func(state *InstallState) bool { return state.EnvVars[keyEnableTelegram] != "true" },
	}
}

// NewAPIKeyStep asks for the key of the provider stored under providerVar,
// unless an earlier step already collected it.
func NewAPIKeyStep(providerVar string) Step {
	s := &InputStep{}
	provider := func(state *InstallState) string {
		return strings.ToLower(state.EnvVars[providerVar])
	}
	s.skip = func(state *InstallState) bool {
		key, title, placeholder, optional := apiKeyVar(provider(state))
		if key == "" || state.EnvVars[key] != "" {
			return true
		}
		s.title = fmt.Sprintf("Enter your %s:", title)
		s.required = !optional
		s.input = newInput(placeholder, !optional)
		s.store = envStore(key)
		return false
	}
	return s
}

func (s *InputStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *InputStep) Skip(state *InstallState) bool {
	return s.skip != nil && s.skip(state)
}

func (s *InputStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())
		if val == "" {
			val = s.def
		}
		if val == "" && s.required {
			return s, nil
		}
		s.store(state, val)
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *InputStep) View(state *InstallState) string {
	hint := "(press enter to confirm)"
	if !s.required {
		hint = "(press enter to confirm or skip)"
	}
	return s.title + "\n\n" + s.input.View() + "\n\n" + hint + "\n"
}
