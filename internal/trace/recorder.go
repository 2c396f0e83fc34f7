package trace

import (
	"strconv"
	"time"
)

// Attribute keys set by the Recorder.
const (
	AttrWidgetID   = "widget_id"
	AttrWidgetKind = "widget_kind"
	AttrPhase      = "phase"
	AttrIndex      = "index"
	AttrValue      = "value"
	AttrAction     = "action"
	AttrSettled    = "settled"
)

// Recorder turns widget lifecycle callbacks into trace events for one
// session: a root session span, a span per mounted widget, and transition
// and interaction spans under the widget. A nil *Recorder records nothing,
// so widgets can be wired without tracing. Use it from the UI goroutine.
type Recorder struct {
	m           *Manager
	now         func() time.Time
	traceID     string
	sessionSpan string
	widgets     map[string]string // widget id -> mount span
	transitions map[string]string // widget id -> open transition span
}

// NewRecorder creates a recorder feeding m. now defaults to time.Now.
func NewRecorder(m *Manager, now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{
		m:           m,
		now:         now,
		traceID:     NewTraceID(),
		widgets:     make(map[string]string),
		transitions: make(map[string]string),
	}
}

// Manager returns the manager events are fed to.
func (r *Recorder) Manager() *Manager {
	if r == nil {
		return nil
	}
	return r.m
}

// TraceID returns the session's trace id.
func (r *Recorder) TraceID() string {
	if r == nil {
		return ""
	}
	return r.traceID
}

// Start opens the session span.
func (r *Recorder) Start(name string) {
	if r == nil || r.sessionSpan != "" {
		return
	}
	r.sessionSpan = NewSpanID()
	r.emit(EventSessionStart, r.sessionSpan, "", name, nil)
}

// End closes every open widget span and then the session span.
func (r *Recorder) End() {
	if r == nil || r.sessionSpan == "" {
		return
	}
	for id := range r.widgets {
		r.Unmount(id)
	}
	r.emit(EventSessionEnd, r.sessionSpan, "", "session", nil)
	r.sessionSpan = ""
}

// Mount opens a span for a widget instance.
func (r *Recorder) Mount(widgetID, kind string) {
	if r == nil {
		return
	}
	if _, ok := r.widgets[widgetID]; ok {
		return
	}
	span := NewSpanID()
	r.widgets[widgetID] = span
	r.emit(EventMount, span, r.sessionSpan, kind+" "+widgetID, map[string]string{
		AttrWidgetID:   widgetID,
		AttrWidgetKind: kind,
	})
}

// Unmount closes the widget's span and any transition still open under it.
func (r *Recorder) Unmount(widgetID string) {
	if r == nil {
		return
	}
	span, ok := r.widgets[widgetID]
	if !ok {
		return
	}
	r.TransitionEnd(widgetID, "")
	delete(r.widgets, widgetID)
	r.emit(EventUnmount, span, r.sessionSpan, widgetID, nil)
}

// TransitionStart opens a span for an animated phase, ending any transition
// the widget still has open.
func (r *Recorder) TransitionStart(widgetID, phase string) {
	if r == nil {
		return
	}
	r.TransitionEnd(widgetID, "")
	span := NewSpanID()
	r.transitions[widgetID] = span
	r.emit(EventTransitionStart, span, r.widgets[widgetID], phase, map[string]string{
		AttrWidgetID: widgetID,
		AttrPhase:    phase,
	})
}

// TransitionEnd closes the widget's open transition, recording the phase it
// settled in when settled is not empty.
func (r *Recorder) TransitionEnd(widgetID, settled string) {
	if r == nil {
		return
	}
	span, ok := r.transitions[widgetID]
	if !ok {
		return
	}
	delete(r.transitions, widgetID)
	var attrs map[string]string
	if settled != "" {
		attrs = map[string]string{AttrSettled: settled}
	}
	r.emit(EventTransitionEnd, span, r.widgets[widgetID], widgetID, attrs)
}

// Interaction records an instantaneous user or autoplay action.
func (r *Recorder) Interaction(widgetID, action string, attrs map[string]string) {
	if r == nil {
		return
	}
	span := NewSpanID()
	parent := r.widgets[widgetID]
	start := map[string]string{AttrWidgetID: widgetID, AttrAction: action}
	for k, v := range attrs {
		start[k] = v
	}
	r.emit(EventInteractionStart, span, parent, action, start)
	r.emit(EventInteractionEnd, span, parent, action, nil)
}

// IndexAttrs is the attribute set for a carousel index change.
func IndexAttrs(index int) map[string]string {
	return map[string]string{AttrIndex: strconv.Itoa(index)}
}

func (r *Recorder) emit(t EventType, span, parent, name string, attrs map[string]string) {
	if r.m == nil {
		return
	}
	r.m.HandleEvent(TraceEvent{
		TraceID:    r.traceID,
		SpanID:     span,
		ParentID:   parent,
		Type:       t,
		Name:       name,
		Timestamp:  r.now(),
		Attributes: attrs,
	})
}
