package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"aishowcase/internal/content"
	"aishowcase/internal/focus"
	"aishowcase/internal/ui/textutil"
)

// ToolItemID is the focus id of a tool row.
func ToolItemID(toolID string) string { return "tool-" + toolID }

// ToolsView lists the tool catalog. Rows are focusable through the page's
// focus manager; the row with focus is highlighted.
type ToolsView struct {
	Tools []content.Tool
	Focus *focus.Manager
	Width int
}

// Ensure ToolsView implements View.
var _ View = (*ToolsView)(nil)

// NewToolsView creates a list over tools. fm receives one id per row.
func NewToolsView(tools []content.Tool, fm *focus.Manager) *ToolsView {
	v := &ToolsView{Tools: tools, Focus: fm, Width: 72}
	for _, t := range tools {
		fm.Add(ToolItemID(t.ID))
	}
	return v
}

// FocusedTool returns the tool whose row has focus.
func (v *ToolsView) FocusedTool() (content.Tool, bool) {
	for _, t := range v.Tools {
		if v.Focus.Current == ToolItemID(t.ID) {
			return t, true
		}
	}
	return content.Tool{}, false
}

// Init implements View.
func (v *ToolsView) Init() tea.Cmd { return nil }

// Update implements View. Up and down move between rows.
func (v *ToolsView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if len(v.Tools) == 0 {
			return v, nil
		}
		idx := v.focusedIndex()
		switch msg.String() {
		case "up", "k":
			if idx <= 0 {
				idx = len(v.Tools)
			}
			v.Focus.SetFocus(ToolItemID(v.Tools[idx-1].ID))
		case "down", "j":
			v.Focus.SetFocus(ToolItemID(v.Tools[(idx+1)%len(v.Tools)].ID))
		}
	case tea.WindowSizeMsg:
		v.Width = min(msg.Width-4, 96)
	}
	return v, nil
}

// View implements View.
func (v *ToolsView) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("Tool catalog"))
	b.WriteString("\n")
	if len(v.Tools) == 0 {
		b.WriteString(Styles.Empty.Render("No tools yet."))
		return b.String()
	}
	for _, t := range v.Tools {
		name := t.Name + "  " + Styles.Muted.Render("("+t.Category+")")
		if v.Focus.Current == ToolItemID(t.ID) {
			b.WriteString(Styles.Selected.Render("> " + t.Name))
			b.WriteString("  " + Styles.Muted.Render("("+t.Category+")"))
		} else {
			b.WriteString("  " + name)
		}
		b.WriteString("\n    " + Styles.Hint.Render(textutil.Truncate(t.Summary, max(v.Width-4, 16))) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (v *ToolsView) focusedIndex() int {
	for i, t := range v.Tools {
		if v.Focus.Current == ToolItemID(t.ID) {
			return i
		}
	}
	return -1
}
