package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, highlights
	ColorHighlight = "205" // Magenta - for focus rings, active tabs
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorText      = "252" // Light gray - for normal text
	ColorDim       = "238" // Very dark gray - for the modal backdrop
	ColorWarning   = "208" // Orange - for prices, status flags
)

// Styles contains shared style definitions used across views and dialogs.
var Styles = struct {
	// Title styles
	Title    lipgloss.Style // Bold accent color - page and dialog titles
	Subtitle lipgloss.Style // Slide titles

	// Box styles
	Card        lipgloss.Style // Slide / plan card
	CardFocused lipgloss.Style // Card while keyboard focus is inside
	Dialog      lipgloss.Style // Open dialog box
	DialogFade  lipgloss.Style // Dialog during opening/closing transitions

	// Tab strip
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	TabFocused  lipgloss.Style // Roving focus marker

	// Text styles
	Selected lipgloss.Style // Focused buttons and list rows
	Muted    lipgloss.Style
	Normal   lipgloss.Style
	Hint     lipgloss.Style
	Price    lipgloss.Style
	Status   lipgloss.Style
	Empty    lipgloss.Style
	Backdrop lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Subtitle: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorText)),
	Card: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Padding(1, 2),
	CardFocused: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2),
	Dialog: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2),
	DialogFade: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Foreground(lipgloss.Color(ColorMuted)).
		Padding(1, 2),
	TabActive: lipgloss.NewStyle().
		Bold(true).
		Underline(true).
		Foreground(lipgloss.Color(ColorAccent)).
		Padding(0, 1),
	TabInactive: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Padding(0, 1),
	TabFocused: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Price: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	Backdrop: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDim)),
}
