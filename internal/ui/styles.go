package ui

import "github.com/charmbracelet/lipgloss"

var (
	BannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14")).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(1, 2).
			Margin(1, 0)

	PromptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	RoundStyle   = lipgloss.NewStyle().Faint(true)
	ActionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	ResultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	ThoughtStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	WarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	AnswerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)
