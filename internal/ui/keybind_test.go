package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestKeybindRegistry_BindLookup(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit)
	reg.BindWithDescForPage("x", tea.Quit, "Only tools", []Page{PageTools})

	if reg.Lookup("q", PageHome) == nil {
		t.Error("expected q to be bound on every page")
	}
	if reg.Lookup("x", PageHome) != nil {
		t.Error("expected x to be filtered out on Home")
	}
	if reg.Lookup("x", PageTools) == nil {
		t.Error("expected x to be bound on Tools")
	}
	if reg.Lookup("unknown", PageHome) != nil {
		t.Error("expected unknown to be unbound")
	}
}

func TestKeybindRegistry_HintsSortedAndFiltered(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("1", tea.Quit, "Home")
	reg.Bind("ctrl+c", tea.Quit) // no description: not shown
	reg.BindWithDescForPage("m", tea.Quit, "Motion", []Page{PageHome})

	var got []string
	for _, b := range reg.Hints(PagePricing) {
		got = append(got, b.Help().Key+"="+b.Help().Desc)
	}
	if strings.Join(got, ",") != "1=Home,q=Quit" {
		t.Errorf("Hints(Pricing): got %v", got)
	}
	if len(reg.Hints(PageHome)) != 3 {
		t.Errorf("Hints(Home): expected 3 bindings, got %d", len(reg.Hints(PageHome)))
	}
}

func TestKeybindRegistry_RebindClearsFilter(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDescForPage("m", tea.Quit, "Motion", []Page{PageHome})
	reg.BindWithDesc("m", tea.Quit, "Motion")
	if reg.Lookup("m", PageTools) == nil {
		t.Error("rebinding without pages should apply everywhere")
	}
}

func TestRenderKeybindHelp(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "Quit")
	widget := []key.Binding{key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus"))}

	out := RenderKeybindHelp(reg, PageHome, widget, 80)
	for _, want := range []string{"q", "Quit", "tab", "focus"} {
		if !strings.Contains(out, want) {
			t.Errorf("help bar missing %q: %q", want, out)
		}
	}
}

// keyMsg builds a tea.KeyMsg from its String() form.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
