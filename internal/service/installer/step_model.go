package installer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandevgo/askfolio/internal/config"
	"github.com/sandevgo/askfolio/internal/core"
	"github.com/sandevgo/askfolio/internal/providers/llm"
)

type modelsMsg []list.Item
type modelsErrMsg struct{ err error }

// noListingMsg means the provider cannot enumerate models.
type noListingMsg struct{}

// ModelLoader fetches the chat models for the providers chosen so far.
type ModelLoader func(ctx context.Context, state *InstallState) ([]core.Model, error)

// errNoListing is returned by a ModelLoader when the provider has no model list.
var errNoListing = errors.New("provider cannot list models")

// ModelStep allows selection of the chat model from the provider's catalog.
type ModelStep struct {
	list     list.Model
	load     ModelLoader
	loading  bool
	fetching bool // Ensures we only trigger the API call once
	err      error
}

func NewModelStep(load ModelLoader) Step {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select AI Model"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return &ModelStep{
		list:    l,
		load:    load,
		loading: true,
	}
}

// LoadModels builds the selected provider from the wizard state and lists its models.
func LoadModels(ctx context.Context, state *InstallState) ([]core.Model, error) {
	cfg := providerConfig(state)
	p, err := llm.NewProvider(ctx, cfg, 0)
	if err != nil {
		return nil, err
	}
	lister, ok := p.(core.ModelLister)
	if !ok {
		return nil, errNoListing
	}
	return lister.Models(ctx)
}

func providerConfig(state *InstallState) *config.ProviderConfig {
	return &config.ProviderConfig{
		Provider:            state.provider(),
		Model:               defaultModel(state.provider()),
		OpenAIAPIKey:        state.EnvVars["OPENAI_API_KEY"],
		AnthropicAPIKey:     state.EnvVars["ANTHROPIC_API_KEY"],
		OpenRouterAPIKey:    state.EnvVars["OPENROUTER_API_KEY"],
		GeminiAPIKey:        state.EnvVars["GEMINI_API_KEY"],
		OllamaBaseURL:       state.EnvVars[keyOllamaBaseURL],
		OllamaAPIKey:        state.EnvVars["OLLAMA_API_KEY"],
		CustomOpenAIBaseURL: state.EnvVars[keyCustomBaseURL],
		CustomOpenAIAPIKey:  state.EnvVars["CUSTOM_OPENAI_API_KEY"],
	}
}

func (s *ModelStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *ModelStep) fetch(state *InstallState) tea.Cmd {
	s.fetching = true
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		models, err := s.load(ctx, state)
		if errors.Is(err, errNoListing) {
			return noListingMsg{}
		}
		if err != nil {
			return modelsErrMsg{err: err}
		}

		items := make([]list.Item, 0, len(models))
		for _, mod := range models {
			desc := "ID: " + mod.ID
			if mod.ContextLength > 0 {
				desc = fmt.Sprintf("ID: %s | Context: %d", mod.ID, mod.ContextLength)
			}
			items = append(items, item{id: mod.ID, title: mod.Name, desc: desc})
		}
		return modelsMsg(items)
	}
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.loading && !s.fetching {
		return s, s.fetch(state)
	}

	s.list.SetSize(width, height-4)

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case noListingMsg:
		return nil, nil

	case modelsMsg:
		s.list.SetItems(msg)
		s.loading = false
		s.fetching = false
		if len(msg) == 0 {
			return nil, nil
		}
		return s, nil

	case modelsErrMsg:
		s.loading = false
		s.fetching = false
		s.err = msg.err
		return s, nil

	case tea.KeyMsg:
		if s.err != nil {
			switch msg.String() {
			case "enter":
				s.err = nil
				s.loading = true
				return s, s.fetch(state)
			case "s":
				return nil, nil
			}
			return s, nil
		}

		if msg.String() == "enter" {
			wasFiltering := s.list.FilterState() == list.Filtering
			s.list, cmd = s.list.Update(msg)

			if wasFiltering || s.list.FilterState() == list.Filtering {
				return s, cmd
			}

			if i, ok := s.list.SelectedItem().(item); ok {
				state.EnvVars[keyModel] = i.id
				return nil, nil
			}
			return s, cmd
		}
	}

	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *ModelStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error fetching models: %v", s.err)) +
			"\n\nCheck your API key and internet connection.\n\n(press enter to retry, s to keep the default model, ctrl+c to quit)\n"
	}
	if s.loading {
		return fmt.Sprintf("Fetching models from %s...\n", state.provider())
	}
	return s.list.View()
}
