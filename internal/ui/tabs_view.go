package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"aishowcase/internal/content"
	"aishowcase/internal/input"
	"aishowcase/internal/tabs"
)

// PlanPanel is the content of one pricing tab. Its viewport keeps its scroll
// offset while the tab is hidden.
type PlanPanel struct {
	Plan     content.Plan
	Viewport viewport.Model
}

// NewPlanPanel builds a panel showing the plan's features.
func NewPlanPanel(p content.Plan, width, height int) *PlanPanel {
	vp := viewport.New(width, height)
	lines := make([]string, len(p.Features))
	for i, f := range p.Features {
		lines[i] = "• " + f
	}
	vp.SetContent(strings.Join(lines, "\n"))
	return &PlanPanel{Plan: p, Viewport: vp}
}

// TabsView renders a pricing tab set. Keys go to the tab strip, or to the
// active panel's viewport when PanelFocused is set.
type TabsView struct {
	Root         *tabs.Root[*PlanPanel]
	Keys         input.KeyMap
	PanelFocused bool
	Width        int
}

// Ensure TabsView implements View.
var _ View = (*TabsView)(nil)

// NewTabsView wraps root.
func NewTabsView(root *tabs.Root[*PlanPanel]) *TabsView {
	return &TabsView{Root: root, Keys: input.DefaultKeyMap, Width: 72}
}

// ListID is the focus id of the tab strip.
func (v *TabsView) ListID() string { return v.Root.ID() + "-list" }

// PanelID is the focus id of the panel body.
func (v *TabsView) PanelID() string { return v.Root.ID() + "-panel" }

// Init implements View.
func (v *TabsView) Init() tea.Cmd { return nil }

// Update implements View.
func (v *TabsView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.PanelFocused {
			if p, ok := v.Root.Active(); ok {
				var cmd tea.Cmd
				p.Viewport, cmd = p.Viewport.Update(msg)
				return v, cmd
			}
			return v, nil
		}
		v.Root.HandleKey(input.NewKeyEvent(v.Keys.FromKeyMsg(msg)))
	case tea.WindowSizeMsg:
		v.Width = min(msg.Width-4, 96)
	}
	return v, nil
}

// View implements View.
func (v *TabsView) View() string {
	r := v.Root
	var strip []string
	for _, t := range r.Triggers() {
		style := Styles.TabInactive
		switch {
		case r.Focused() == t.Value:
			style = Styles.TabFocused
		case r.IsSelected(t.Value):
			style = Styles.TabActive
		}
		label := t.Label
		if r.IsSelected(t.Value) {
			label = "[" + label + "]"
		}
		strip = append(strip, style.Render(label))
	}

	header := Styles.Title.Render(r.Label())
	row := lipgloss.JoinHorizontal(lipgloss.Top, strip...)

	p, ok := r.Active()
	if !ok {
		return lipgloss.JoinVertical(lipgloss.Left, header, row, Styles.Empty.Render("No plan selected."))
	}
	card := Styles.Card
	if v.PanelFocused {
		card = Styles.CardFocused
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		Styles.Subtitle.Render(p.Plan.Label)+"  "+Styles.Price.Render(p.Plan.Price),
		p.Viewport.View(),
	)
	if p.Viewport.TotalLineCount() > p.Viewport.Height {
		body += "\n" + Styles.Hint.Render("↑/↓ to scroll features")
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, row, card.Width(v.Width).Render(body))
}
