package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"aishowcase/internal/trace"
	"aishowcase/internal/ui/textutil"
)

// TraceOverlayID identifies the trace panel in the overlay stack.
const TraceOverlayID = "trace"

// TraceView shows the session trace as a tree: one branch per mounted
// widget with its transitions and interactions underneath.
type TraceView struct {
	recorder *trace.Recorder
	viewport viewport.Model
	width    int
	height   int
}

// Ensure TraceView implements View
var _ View = (*TraceView)(nil)

// NewTraceView creates a trace panel for the recorder's session.
func NewTraceView(r *trace.Recorder) *TraceView {
	vp := viewport.New(60, 16)
	vp.Style = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1)
	return &TraceView{recorder: r, viewport: vp, width: 60, height: 16}
}

// Init implements View
func (v *TraceView) Init() tea.Cmd {
	return nil
}

// Update implements View
func (v *TraceView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetSize(min(msg.Width-8, 80), max(msg.Height-8, 6))
		return v, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "g", "home":
			v.viewport.GotoTop()
			return v, nil
		case "G", "end":
			v.viewport.GotoBottom()
			return v, nil
		}
	}
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View implements View
func (v *TraceView) View() string {
	v.refreshContent()
	return v.viewport.View()
}

// SetSize sets the size of the trace view
func (v *TraceView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = height
}

// refreshContent rebuilds the viewport content from the session trace
func (v *TraceView) refreshContent() {
	m := v.recorder.Manager()
	if m == nil {
		v.viewport.SetContent(Styles.Muted.Render("Tracing disabled"))
		return
	}
	t := m.Trace(v.recorder.TraceID())
	if t == nil || t.RootSpan == nil {
		v.viewport.SetContent(Styles.Muted.Render("No spans yet"))
		return
	}

	status := Styles.Status.Render("● " + t.Status)
	lines := []string{
		Styles.Title.Render("Session "+shortTraceID(t.ID)) + " " + status,
		"",
	}
	root := t.RootSpan
	if len(root.Children) == 0 {
		lines = append(lines, Styles.Muted.Render("  (no widgets mounted)"))
	}
	for i, child := range root.Children {
		lines = append(lines, v.renderSpan(child, "", i == len(root.Children)-1)...)
	}
	v.viewport.SetContent(strings.Join(lines, "\n"))
}

// renderSpan recursively renders a span and its children as a tree
func (v *TraceView) renderSpan(span *trace.Span, prefix string, isLast bool) []string {
	connector := "├─"
	if isLast {
		connector = "└─"
	}
	name := span.Name
	if name == "" {
		name = "(unnamed)"
	}
	if idx, ok := span.Attributes[trace.AttrIndex]; ok {
		name += " #" + idx
	}
	if val, ok := span.Attributes[trace.AttrValue]; ok {
		name += " " + val
	}
	// Reserve room for the duration column.
	name = textutil.Truncate(name, max(v.width-textutil.VisualWidth(prefix)-16, 8))

	line := prefix + connector + " " + name
	if span.Duration > 0 {
		line += " " + Styles.Muted.Render(formatDuration(span.Duration))
	} else if !span.StartTime.IsZero() && len(span.Children) > 0 {
		line += " " + Styles.Price.Render("open")
	}
	lines := []string{line}

	childPrefix := prefix + "│  "
	if isLast {
		childPrefix = prefix + "   "
	}
	for i, child := range span.Children {
		lines = append(lines, v.renderSpan(child, childPrefix, i == len(span.Children)-1)...)
	}
	return lines
}

// formatDuration formats a duration for the tree's duration column.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		d = d.Round(time.Second)
		return fmt.Sprintf("%dm%ds", d/time.Minute, (d%time.Minute)/time.Second)
	}
}

// shortTraceID returns a shortened version of the trace ID for display
func shortTraceID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
