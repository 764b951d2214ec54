package installer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sandevgo/askfolio/internal/config"
)

// FinalizationStep fills in derived values before saving.
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	finalize(state)
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}

func finalize(state *InstallState) {
	if state.EnvVars[keyModel] == "" {
		state.EnvVars[keyModel] = defaultModel(state.provider())
	}
	if state.EnvVars["EMBEDDING_MODEL"] == "" {
		state.EnvVars["EMBEDDING_MODEL"] = defaultEmbeddingModel(state.embeddingProvider())
	}
	if state.EnvVars[keyEnableTelegram] == "" {
		state.EnvVars[keyEnableTelegram] = "false"
	}
	if state.EnvVars["ASKFOLIO_DEBUG"] == "" {
		state.EnvVars["ASKFOLIO_DEBUG"] = "0"
	}
}

// SaveEnvStep writes the collected configuration to the runtime .env file.
type SaveEnvStep struct {
	dir   string
	err   error
	saved bool
}

func NewSaveEnvStep(dir string) Step {
	return &SaveEnvStep{dir: dir}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}
	if err := saveEnv(s.dir, state.EnvVars); err != nil {
		s.err = err
		return s, nil
	}
	s.saved = true
	return nil, nil
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return "Configuration saved successfully!\n"
	}
	return "Saving configuration...\n"
}

func saveEnv(dir string, vars map[string]string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		return fmt.Errorf(".env file already exists at %s", envPath)
	}

	// Marshal sorts keys and quotes values.
	content, err := godotenv.Marshal(vars)
	if err != nil {
		return err
	}
	return os.WriteFile(envPath, []byte(content+"\n"), 0600)
}

// ProfileStep writes a starter profile.yaml for the chosen name.
type ProfileStep struct {
	dir  string
	err  error
	done bool
}

func NewProfileStep(dir string) Step {
	return &ProfileStep{dir: dir}
}

func (s *ProfileStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *ProfileStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.done {
		return nil, nil
	}
	if err := writeProfile(filepath.Join(s.dir, "profile.yaml"), state.ProfileName); err != nil {
		s.err = err
		return s, nil
	}
	s.done = true
	return nil, nil
}

func (s *ProfileStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.done {
		return "Profile written.\n"
	}
	return "Writing profile...\n"
}

// writeProfile keeps an existing profile untouched.
func writeProfile(path, name string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	p := config.StarterProfile(name)
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
