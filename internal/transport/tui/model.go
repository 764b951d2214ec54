package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sandevgo/askfolio/internal/core"
	"github.com/sandevgo/askfolio/internal/service/assistant"
	"github.com/sandevgo/askfolio/internal/service/ui"
	"github.com/sandevgo/askfolio/pkg/conv"
)

// SessionID is the single session the terminal chat runs in.
const SessionID = "cli-local"

// Asker is the subset of the session manager the chat needs.
type Asker interface {
	Ask(ctx context.Context, sessionID, question string) (assistant.Reply, error)
}

type entry struct {
	question string
	answer   string
	failed   bool
}

type answerMsg struct {
	question string
	reply    assistant.Reply
}

type errMsg struct {
	question string
	err      error
}

// Model is the bubbletea chat model. History is shown newest first.
type Model struct {
	ctx    context.Context
	asker  Asker
	router core.CmdRouter
	title  string

	input    textinput.Model
	viewport viewport.Model
	history  []entry
	status   string
	busy     bool
	ready    bool
	width    int
}

func New(ctx context.Context, asker Asker, router core.CmdRouter, title string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question, or /help"
	ti.Focus()
	ti.CharLimit = 0

	return Model{
		ctx:      ctx,
		asker:    asker,
		router:   router,
		title:    title,
		input:    ti,
		viewport: viewport.New(0, 0),
		status:   "Ready.",
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		_, bh := ui.BoxStyle.GetFrameSize()
		// title + status + input box
		reserved := 2 + bh + 1 + bh
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = max(3, msg.Height-reserved)
		m.input.Width = max(10, msg.Width-6)
		m.viewport.SetContent(m.renderHistory())
		return m, nil

	case answerMsg:
		m.busy = false
		m.status = "Ready."
		m.history = append([]entry{{question: msg.question, answer: msg.reply.Text}}, m.history...)
		m.refresh()
		return m, nil

	case errMsg:
		m.busy = false
		m.status = "Error: " + msg.err.Error()
		m.history = append([]entry{{question: msg.question, answer: msg.err.Error(), failed: true}}, m.history...)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			return m.submit()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	q := strings.TrimSpace(m.input.Value())
	if q == "" || m.busy {
		return m, nil
	}
	m.input.Reset()

	if out, ok := m.router.Execute(m.ctx, SessionID, q); ok {
		if isReset(q) {
			m.history = nil
		}
		m.history = append([]entry{{question: q, answer: out}}, m.history...)
		m.refresh()
		return m, nil
	}

	m.busy = true
	m.status = "Thinking..."
	return m, m.ask(q)
}

func (m Model) ask(question string) tea.Cmd {
	ctx, asker := m.ctx, m.asker
	return func() tea.Msg {
		reply, err := asker.Ask(ctx, SessionID, question)
		if err != nil {
			return errMsg{question: question, err: err}
		}
		return answerMsg{question: question, reply: reply}
	}
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoTop()
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	title := ui.TitleStyle.UnsetMarginBottom().Render(m.title)
	status := ui.DescStyle.Render(m.status)
	if strings.HasPrefix(m.status, "Error") {
		status = ui.ErrorStyle.Render(m.status)
	}
	return title + "\n" +
		ui.BoxStyle.Render(m.viewport.View()) + "\n" +
		ui.BoxStyle.Render(m.input.View()) + "\n" +
		status
}

func (m Model) renderHistory() string {
	if len(m.history) == 0 {
		return ui.DescStyle.Render("No messages yet.")
	}

	wrap := lipgloss.NewStyle().Width(max(20, m.viewport.Width-2))
	blocks := make([]string, 0, len(m.history))
	for _, e := range m.history {
		answer := conv.MarkdownToText(e.answer)
		style := ui.AnswerStyle
		if e.failed {
			style = ui.ErrorStyle
		}
		blocks = append(blocks, fmt.Sprintf("%s\n%s",
			ui.QuestionStyle.Render("You: "+e.question),
			wrap.Render(style.Render(answer)),
		))
	}
	return strings.Join(blocks, "\n\n")
}

func isReset(input string) bool {
	fields := strings.Fields(strings.ToLower(input))
	return len(fields) > 0 && fields[0] == "/reset"
}

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
