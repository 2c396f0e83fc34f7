package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"aishowcase/internal/content"
	"aishowcase/internal/modal"
)

// TryButtonID is the id of a tool dialog's primary action.
func TryButtonID(m *modal.Modal) string { return m.ID() + "-try" }

// DialogView draws a tool's details dialog. Key handling lives in AppModel,
// which owns the focus manager the dialog's buttons are mounted in.
type DialogView struct {
	Modal *modal.Modal
	Tool  content.Tool
	Width int
}

// Ensure DialogView implements View.
var _ View = (*DialogView)(nil)

// NewDialogView creates a view for m.
func NewDialogView(m *modal.Modal, tool content.Tool) *DialogView {
	return &DialogView{Modal: m, Tool: tool, Width: 56}
}

// Init implements View.
func (v *DialogView) Init() tea.Cmd { return nil }

// Update implements View.
func (v *DialogView) Update(msg tea.Msg) (View, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		v.Width = max(min(ws.Width-8, 64), 24)
	}
	return v, nil
}

// View implements View. While the dialog is fading in or out it is drawn in
// the muted style.
func (v *DialogView) View() string {
	m := v.Modal
	style := Styles.Dialog
	if m.IsAnimating() {
		style = Styles.DialogFade
	}
	inner := max(v.Width-style.GetHorizontalFrameSize(), 10)

	current := m.FocusManager().Current
	button := func(id, label string) string {
		if current == id {
			return Styles.Selected.Render("[ " + label + " ]")
		}
		return Styles.Muted.Render("[ " + label + " ]")
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		button(TryButtonID(m), "Try it"), "  ",
		button(m.CloseButtonID(), "Close"),
	)

	var b strings.Builder
	b.WriteString(Styles.Title.Render(m.Title()))
	b.WriteString("\n")
	b.WriteString(Styles.Muted.Render(v.Tool.Category))
	b.WriteString("\n\n")
	b.WriteString(Styles.Normal.Width(inner).Render(v.Tool.Details))
	b.WriteString("\n\n")
	b.WriteString(buttons)
	return style.Width(v.Width).Render(b.String())
}
