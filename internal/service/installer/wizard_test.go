package installer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/askfolio/internal/config"
	"github.com/sandevgo/askfolio/internal/core"
)

func staticModels(models ...core.Model) ModelLoader {
	return func(ctx context.Context, state *InstallState) ([]core.Model, error) {
		return models, nil
	}
}

type driver struct {
	t *testing.T
	m model
}

func (d *driver) send(msg tea.Msg) tea.Cmd {
	d.t.Helper()
	next, cmd := d.m.Update(msg)
	d.m = next.(model)
	return cmd
}

func (d *driver) typeText(s string) {
	d.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (d *driver) enter() tea.Cmd {
	return d.send(tea.KeyMsg{Type: tea.KeyEnter})
}

func (d *driver) current() Step {
	return d.m.steps[d.m.currentStep]
}

func TestWizard_OpenAIFlow(t *testing.T) {
	dir := t.TempDir()
	load := staticModels(core.Model{ID: "gpt-4o-mini", Name: "GPT-4o mini"}, core.Model{ID: "gpt-4o", Name: "GPT-4o"})
	d := &driver{t: t, m: newModel(getSteps(dir, load))}
	d.send(tea.WindowSizeMsg{Width: 100, Height: 40})

	// owner name
	d.typeText("Jane Doe")
	d.enter()

	// provider: OpenAI is first
	d.enter()

	// skips Ollama and custom URLs, asks for the key
	require.IsType(t, &InputStep{}, d.current())
	d.typeText("sk-test")
	d.enter()

	// model list is fetched then the first entry picked
	require.IsType(t, &ModelStep{}, d.current())
	fetch := d.send(nextMsg{})
	require.NotNil(t, fetch)
	d.send(fetch())
	d.enter()

	// embeddings: OpenAI again, key already known
	d.enter()

	// documents: keep default
	require.IsType(t, &InputStep{}, d.current())
	d.enter()

	// channel: no telegram
	d.enter()

	// finalization, save, profile
	for d.m.currentStep < len(d.m.steps) {
		d.send(nextMsg{})
	}

	vars, err := godotenv.Read(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, "openai", vars["LLM_PROVIDER"])
	assert.Equal(t, "gpt-4o-mini", vars["LLM_MODEL"])
	assert.Equal(t, "sk-test", vars["OPENAI_API_KEY"])
	assert.Equal(t, "openai", vars["EMBEDDING_PROVIDER"])
	assert.Equal(t, "text-embedding-ada-002", vars["EMBEDDING_MODEL"])
	assert.Equal(t, "resume.pdf,profile.pdf", vars["ASKFOLIO_DOCUMENTS"])
	assert.Equal(t, "false", vars["ENABLE_TELEGRAM"])
	assert.NotContains(t, vars, "TELEGRAM_TOKEN")

	p, err := config.LoadProfile(filepath.Join(dir, "profile.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.Name)
	assert.Contains(t, p.Contact.Answer, "Jane Doe")
}

func TestWizard_ProviderWithoutModelListing(t *testing.T) {
	dir := t.TempDir()
	load := func(ctx context.Context, state *InstallState) ([]core.Model, error) {
		return nil, errNoListing
	}
	d := &driver{t: t, m: newModel(getSteps(dir, load))}
	d.send(tea.WindowSizeMsg{Width: 100, Height: 40})

	d.typeText("Jane")
	d.enter()

	// Gemini
	for range 3 {
		d.send(tea.KeyMsg{Type: tea.KeyDown})
	}
	d.enter()
	d.typeText("AIza-test")
	d.enter()

	fetch := d.send(nextMsg{})
	require.NotNil(t, fetch)
	d.send(fetch())

	// embedding provider step follows without picking a model
	require.IsType(t, &SelectStep{}, d.current())
	assert.Equal(t, keyEmbeddingProvider, d.current().(*SelectStep).envKey)

	finalize(d.m.state)
	assert.Equal(t, "gemini-1.5-flash", d.m.state.EnvVars[keyModel])
}

func TestWizard_TelegramTokenRequired(t *testing.T) {
	state := NewInstallState()
	state.EnvVars[keyEnableTelegram] = "true"

	step := NewTelegramTokenStep().(*InputStep)
	require.False(t, step.Skip(state))

	next, _ := step.Update(tea.KeyMsg{Type: tea.KeyEnter}, state, 80, 24)
	assert.Same(t, step, next)

	step.input.SetValue("123:abc")
	next, _ = step.Update(tea.KeyMsg{Type: tea.KeyEnter}, state, 80, 24)
	assert.Nil(t, next)
	assert.Equal(t, "123:abc", state.EnvVars[keyTelegramToken])
}

func TestWizard_CtrlCQuits(t *testing.T) {
	d := &driver{t: t, m: newModel(getSteps(t.TempDir(), staticModels()))}
	cmd := d.send(tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.True(t, d.m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, "Installation cancelled.\n", d.m.View())
}

func TestAPIKeyStep_SkipsKnownOrUnknownKeys(t *testing.T) {
	state := NewInstallState()
	step := NewAPIKeyStep(keyEmbeddingProvider).(*InputStep)

	assert.True(t, step.Skip(state), "no provider selected")

	state.EnvVars[keyEmbeddingProvider] = "openai"
	assert.False(t, step.Skip(state))

	state.EnvVars["OPENAI_API_KEY"] = "sk"
	assert.True(t, step.Skip(state))

	state.EnvVars[keyEmbeddingProvider] = "ollama"
	assert.False(t, step.Skip(state))
	assert.False(t, step.required)
}

func TestSaveEnv_RefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("A=1\n"), 0600))

	err := saveEnv(dir, map[string]string{"B": "2"})
	assert.ErrorContains(t, err, "already exists")
}

func TestSaveEnv_QuotesValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, saveEnv(dir, map[string]string{"ASKFOLIO_DOCUMENTS": "my resume.pdf,notes.md"}))

	vars, err := godotenv.Read(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, "my resume.pdf,notes.md", vars["ASKFOLIO_DOCUMENTS"])

	info, err := os.Stat(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestWriteProfile_KeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Kept\n"), 0644))

	require.NoError(t, writeProfile(path, "Other"))

	p, err := config.LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "Kept", p.Name)
}

func TestModelStep_RetryAfterError(t *testing.T) {
	calls := 0
	load := func(ctx context.Context, state *InstallState) ([]core.Model, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("401 unauthorized")
		}
		return []core.Model{{ID: "m1", Name: "M1"}}, nil
	}
	state := NewInstallState()
	step := NewModelStep(load).(*ModelStep)

	_, fetch := step.Update(nextMsg{}, state, 80, 24)
	step.Update(fetch(), state, 80, 24)
	assert.Contains(t, step.View(state), "401 unauthorized")

	_, fetch = step.Update(tea.KeyMsg{Type: tea.KeyEnter}, state, 80, 24)
	require.NotNil(t, fetch)
	step.Update(fetch(), state, 80, 24)

	next, _ := step.Update(tea.KeyMsg{Type: tea.KeyEnter}, state, 80, 24)
	assert.Nil(t, next)
	assert.Equal(t, "m1", state.EnvVars[keyModel])
	assert.Equal(t, 2, calls)
}
