package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"aishowcase/internal/a11y"
	"aishowcase/internal/input"
	"aishowcase/internal/modal"
)

func (a *appModelAdapter) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	a.Width, a.Height = msg.Width, msg.Height
	a.Hero.Update(msg)
	a.Plans.Update(msg)
	a.Tools.Update(msg)
	for _, o := range a.Overlays.Stack {
		o.View.Update(msg)
	}
	return a, nil
}

// handleKey routes a key: an open dialog sees it first and swallows it, then
// page-scoped bindings, then Tab order, then the focused element.
func (a *appModelAdapter) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if m := a.ActiveDialog(); m != nil {
		a.handleDialogKey(m, msg)
		return a, nil
	}
	if top, ok := a.Overlays.Peek(); ok && top.ID == TraceOverlayID {
		switch msg.String() {
		case "t", "esc":
			a.toggleTrace()
			return a, nil
		}
		cmd, _ := a.Overlays.UpdateTop(msg)
		return a, cmd
	}
	if cmd := a.Keys.Lookup(msg.String(), a.Page); cmd != nil {
		return a, cmd
	}

	fm := a.PageFocus()
	switch a.KeyMap.FromKeyMsg(msg) {
	case input.KeyTab:
		fm.Next()
		return a, nil
	case input.KeyShiftTab:
		fm.Prev()
		return a, nil
	}
	return a.routeToPage(msg)
}

func (a *appModelAdapter) handleDialogKey(m *modal.Modal, msg tea.KeyMsg) {
	ev := input.NewKeyEvent(a.KeyMap.FromKeyMsg(msg))
	if m.HandleKey(ev) || m.Phase() != modal.PhaseOpen {
		return
	}
	if ev.Key != input.KeyEnter && ev.Key != input.KeySpace {
		return
	}
	switch m.FocusManager().Current {
	case m.CloseButtonID():
		m.Close()
	case TryButtonID(m):
		a.Recorder.Interaction(m.ID(), "try", nil)
		a.Live.Announce("Launching "+m.Title(), a11y.PolitenessPolite)
		m.Close()
	}
}

func (a *appModelAdapter) routeToPage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	current := a.PageFocus().Current
	k := a.KeyMap.FromKeyMsg(msg)

	switch a.Page {
	case PageHome:
		switch current {
		case a.Hero.Carousel.ID():
			_, cmd := a.Hero.Update(msg)
			return a, cmd
		case ExploreButtonID:
			if k == input.KeyEnter || k == input.KeySpace {
				a.SetPage(PageTools)
			}
		}
	case PagePricing:
		if current != "" {
			_, cmd := a.Plans.Update(msg)
			return a, cmd
		}
	case PageTools:
		if k == input.KeyEnter || k == input.KeySpace {
			if t, ok := a.Tools.FocusedTool(); ok {
				a.Dialogs[t.ID].Open()
			}
			return a, nil
		}
		_, cmd := a.Tools.Update(msg)
		return a, cmd
	}
	return a, nil
}

// handleMouse applies hover pause and dot clicks to the carousel and
// backdrop dismissal to an open dialog. Regions come from the last render.
func (a *appModelAdapter) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	press := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
	if m := a.ActiveDialog(); m != nil {
		if press && !a.dialogRect.Contains(msg.X, msg.Y) {
			m.ActivateBackdrop()
		}
		return a, nil
	}
	if a.Page != PageHome || a.Overlays.Len() > 0 {
		return a, nil
	}
	inside := a.carouselRect.Contains(msg.X, msg.Y)
	if press && inside {
		if i, ok := a.Hero.DotAt(msg.X-a.carouselRect.X, msg.Y-a.carouselRect.Y); ok {
			if err := a.Hero.Carousel.ActivateDot(i); err != nil {
				a.logger.Warn("dot activation failed", zap.Int("dot", i), zap.Error(err))
			}
		}
	}
	if inside != a.hovering {
		a.hovering = inside
		if inside {
			a.Hero.Carousel.HandlePointer(input.PointerEnter)
		} else {
			a.Hero.Carousel.HandlePointer(input.PointerLeave)
		}
	}
	return a, nil
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	nav := a.renderNav()
	body := a.renderPage()
	base := lipgloss.JoinVertical(lipgloss.Left,
		nav,
		"",
		body,
		"",
		a.renderStatus(),
		RenderKeybindHelp(a.Keys, a.Page, a.KeyMap.ShortHelp(), a.Width),
	)

	top, ok := a.Overlays.Peek()
	if !ok {
		a.dialogRect = Rect{}
		return base
	}
	out, rect := RenderOverlay(base, top.View.View(), a.Width, a.Height, true)
	a.dialogRect = rect
	return out
}

func (a *appModelAdapter) renderNav() string {
	items := []string{Styles.Title.Render("AI Showcase")}
	for i, p := range Pages {
		label := string(rune('1'+i)) + " " + p.String()
		if p == a.Page {
			items = append(items, Styles.TabActive.Render(label))
		} else {
			items = append(items, Styles.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

func (a *appModelAdapter) renderPage() string {
	switch a.Page {
	case PagePricing:
		a.carouselRect = Rect{}
		return a.Plans.View()
	case PageTools:
		a.carouselRect = Rect{}
		return a.Tools.View()
	}

	hero := a.Hero.View()
	// The nav line and the blank line under it precede the page body.
	a.carouselRect = Rect{X: 0, Y: 2, W: lipgloss.Width(hero), H: lipgloss.Height(hero)}

	label := "[ Explore tools ]"
	button := Styles.Muted.Render(label)
	if a.PageFocus().Current == ExploreButtonID {
		button = Styles.Selected.Render(label)
	}
	return lipgloss.JoinVertical(lipgloss.Left, hero, "", button)
}

func (a *appModelAdapter) renderStatus() string {
	motionState := "motion: full"
	if a.Motion.ReducedMotion() {
		motionState = "motion: reduced"
	}
	last := ""
	if ann, ok := a.Live.Last(); ok {
		last = ann.Message + "  "
	}
	return Styles.Status.Render(last) + Styles.Hint.Render(motionState)
}
