// Package input defines the host-neutral key and pointer events the widgets
// consume, and maps Bubble Tea key messages onto them.
package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Key is a logical key the widgets react to.
type Key int

const (
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyTab
	KeyShiftTab
	KeyEscape
	KeyEnter
	KeySpace
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "ArrowLeft"
	case KeyRight:
		return "ArrowRight"
	case KeyUp:
		return "ArrowUp"
	case KeyDown:
		return "ArrowDown"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyTab:
		return "Tab"
	case KeyShiftTab:
		return "Shift+Tab"
	case KeyEscape:
		return "Escape"
	case KeyEnter:
		return "Enter"
	case KeySpace:
		return "Space"
	default:
		return "Unknown"
	}
}

// KeyEvent is a key press delivered to a widget. A widget that consumes the
// key calls PreventDefault so the host skips its own handling (scrolling,
// page-level focus movement).
type KeyEvent struct {
	Key              Key
	defaultPrevented bool
}

// NewKeyEvent creates an event for k.
func NewKeyEvent(k Key) *KeyEvent {
	return &KeyEvent{Key: k}
}

// PreventDefault marks the event as consumed.
func (e *KeyEvent) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a handler consumed the event.
func (e *KeyEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Pointer is a pointer (mouse) event kind.
type Pointer int

const (
	PointerEnter Pointer = iota
	PointerLeave
	PointerClick
)

// KeyMap binds terminal keys to logical keys. It doubles as a help.KeyMap
// source for the on-screen hint bar.
type KeyMap struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Home     key.Binding
	End      key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
	Escape   key.Binding
	Enter    key.Binding
	Space    key.Binding
}

// DefaultKeyMap is the terminal mapping used by the showcase.
var DefaultKeyMap = KeyMap{
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next")),
	Up:       key.NewBinding(key.WithKeys("up", "k")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "first")),
	End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "last")),
	Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
	ShiftTab: key.NewBinding(key.WithKeys("shift+tab")),
	Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "activate")),
	Space:    key.NewBinding(key.WithKeys(" ")),
}

// FromKeyMsg translates a Bubble Tea key message using the map.
func (m KeyMap) FromKeyMsg(msg tea.KeyMsg) Key {
	switch {
	case key.Matches(msg, m.Left):
		return KeyLeft
	case key.Matches(msg, m.Right):
		return KeyRight
	case key.Matches(msg, m.Up):
		return KeyUp
	case key.Matches(msg, m.Down):
		return KeyDown
	case key.Matches(msg, m.Home):
		return KeyHome
	case key.Matches(msg, m.End):
		return KeyEnd
	case key.Matches(msg, m.ShiftTab):
		return KeyShiftTab
	case key.Matches(msg, m.Tab):
		return KeyTab
	case key.Matches(msg, m.Escape):
		return KeyEscape
	case key.Matches(msg, m.Enter):
		return KeyEnter
	case key.Matches(msg, m.Space):
		return KeySpace
	}
	return KeyUnknown
}

// ShortHelp implements help.KeyMap.
func (m KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{m.Left, m.Right, m.Tab, m.Enter, m.Escape}
}

// FullHelp implements help.KeyMap.
func (m KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp(), {m.Home, m.End}}
}
