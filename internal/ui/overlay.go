package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Overlay is a dialog view drawn above the page. ID matches the dialog it renders.
type Overlay struct {
	ID   string
	View View
}

// OverlayStack manages a stack of overlays (topmost receives input first).
type OverlayStack struct {
	Stack []Overlay
}

// Push adds an overlay to the top of the stack.
func (s *OverlayStack) Push(o Overlay) {
	s.Stack = append(s.Stack, o)
}

// Pop removes and returns the top overlay.
func (s *OverlayStack) Pop() (Overlay, bool) {
	if len(s.Stack) == 0 {
		return Overlay{}, false
	}
	top := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return top, true
}

// Remove drops the overlay with id wherever it sits in the stack.
func (s *OverlayStack) Remove(id string) bool {
	for i, o := range s.Stack {
		if o.ID == id {
			s.Stack = append(s.Stack[:i:i], s.Stack[i+1:]...)
			return true
		}
	}
	return false
}

// Peek returns the top overlay without removing it.
func (s *OverlayStack) Peek() (Overlay, bool) {
	if len(s.Stack) == 0 {
		return Overlay{}, false
	}
	return s.Stack[len(s.Stack)-1], true
}

// Len returns the number of overlays in the stack.
func (s *OverlayStack) Len() int {
	return len(s.Stack)
}

// UpdateTop passes msg to the top overlay's Update and replaces its View with the result.
// Returns the cmd from the overlay's Update. Caller must run the cmd.
func (s *OverlayStack) UpdateTop(msg tea.Msg) (tea.Cmd, bool) {
	if len(s.Stack) == 0 {
		return nil, false
	}
	top := &s.Stack[len(s.Stack)-1]
	newView, cmd := top.View.Update(msg)
	top.View = newView
	return cmd, true
}

// Rect is a screen rectangle in cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// RenderOverlay centers box over base on a width x height canvas. With dim
// set, the base is stripped of styling and drawn in the backdrop color.
// It returns the composited screen and where the box landed.
func RenderOverlay(base, box string, width, height int, dim bool) (string, Rect) {
	if width <= 0 || height <= 0 {
		return "", Rect{}
	}
	if dim {
		base = Styles.Backdrop.Render(ansi.Strip(base))
	}
	baseCanvas := fitCanvas(base, width, height)

	bw, bh := lipgloss.Width(box), lipgloss.Height(box)
	if bw > width {
		bw = width
	}
	if bh > height {
		bh = height
	}
	rect := Rect{X: (width - bw) / 2, Y: (height - bh) / 2, W: bw, H: bh}

	baseLines := strings.Split(baseCanvas, "\n")
	boxLines := strings.Split(box, "\n")
	for i := 0; i < rect.H && i < len(boxLines); i++ {
		row := rect.Y + i
		line := padRightANSI(baseLines[row], width)
		left := ansi.Truncate(line, rect.X, "")
		segment := padRightANSI(boxLines[i], rect.W)
		right := dropColumns(line, rect.X+rect.W)
		baseLines[row] = padRightANSI(left+segment+right, width)
	}
	return strings.Join(baseLines, "\n"), rect
}

func fitCanvas(s string, width, height int) string {
	lines := splitToLines(s, height)
	for i := range lines {
		lines[i] = padRightANSI(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

func splitToLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func dropColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	return ansi.TruncateLeft(s, cols, "")
}

func padRightANSI(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
