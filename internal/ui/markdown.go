package ui

import "github.com/charmbracelet/glamour"

// NewMarkdownRenderer returns a glamour renderer for final answers.
// Non-interactive output gets the plain "notty" style.
func NewMarkdownRenderer(interactive bool, wordWrap int) (*glamour.TermRenderer, error) {
	style := glamour.WithStandardStyle("notty")
	if interactive {
		style = glamour.WithAutoStyle()
	}
	return glamour.NewTermRenderer(style, glamour.WithWordWrap(wordWrap))
}
