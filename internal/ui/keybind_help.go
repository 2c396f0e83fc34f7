package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// RenderKeybindHelp renders the one-line help bar for page.
func RenderKeybindHelp(reg *KeybindRegistry, page Page, widget []key.Binding, width int) string {
	helpModel := help.New()
	helpModel.Width = width
	helpModel.Styles.ShortKey = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true)
	helpModel.Styles.ShortDesc = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted))
	helpModel.Styles.ShortSeparator = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted))
	return helpModel.View(NewKeyMap(reg, page, widget))
}
