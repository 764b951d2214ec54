package ui

import "github.com/charmbracelet/lipgloss"

// Plain ANSI colors so the palette follows the terminal theme.
var (
	// TitleStyle ANSI 6 (cyan) for headings.
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	// UsageStyle ANSI 2 (green) for arguments and usage lines.
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle ANSI 8 (gray) for descriptions.
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// FlagStyle ANSI 3 (yellow) for flags.
	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	QuestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	AnswerStyle   = lipgloss.NewStyle()
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	BoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)
