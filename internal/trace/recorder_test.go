package trace

import (
	"testing"
	"time"
)

type stepClock struct{ t time.Time }

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(10 * time.Millisecond)
	return c.t
}

func TestRecorder_SessionTree(t *testing.T) {
	m := newManager(5)
	clk := &stepClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	r := NewRecorder(m, clk.now)

	r.Start("showcase")
	r.Mount("hero", "carousel")
	r.Mount("hero", "carousel") // duplicate ignored
	r.Interaction("hero", "next", IndexAttrs(1))
	r.Mount("details", "modal")
	r.TransitionStart("details", "opening")
	r.TransitionEnd("details", "open")
	r.TransitionStart("details", "closing")
	r.End()

	trace := m.Trace(r.TraceID())
	if trace == nil || trace.Status != "completed" {
		t.Fatalf("expected completed trace, got %+v", trace)
	}
	if m.OpenSpans() != 0 {
		t.Errorf("End must close every span, %d open", m.OpenSpans())
	}

	root := trace.RootSpan
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 widget spans, got %d", len(root.Children))
	}
	hero, details := root.Children[0], root.Children[1]
	if hero.Attributes[AttrWidgetKind] != "carousel" {
		t.Errorf("hero kind: %v", hero.Attributes)
	}
	if len(hero.Children) != 1 || hero.Children[0].Attributes[AttrIndex] != "1" {
		t.Errorf("hero interaction: %+v", hero.Children)
	}
	if len(details.Children) != 2 {
		t.Fatalf("expected opening and closing transitions, got %d", len(details.Children))
	}
	if details.Children[0].Attributes["settled"] != "open" {
		t.Errorf("opening settled attr: %v", details.Children[0].Attributes)
	}
	if details.Children[1].Duration == 0 {
		t.Error("closing transition still open must be ended on unmount")
	}
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	r.Start("x")
	r.Mount("a", "tabs")
	r.TransitionStart("a", "opening")
	r.TransitionEnd("a", "open")
	r.Interaction("a", "select", nil)
	r.Unmount("a")
	r.End()
	if r.TraceID() != "" {
		t.Error("nil recorder has no trace id")
	}
}
