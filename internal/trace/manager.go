package trace

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Span represents a span with start time and duration. Duration is zero
// while the span is still open.
type Span struct {
	TraceID    string
	SpanID     string
	ParentID   string
	Name       string
	StartTime  time.Time
	Duration   time.Duration
	Attributes map[string]string
	Children   []*Span // Nested spans
}

// Walk visits s and its descendants depth-first.
func (s *Span) Walk(fn func(*Span)) {
	if s == nil {
		return
	}
	fn(s)
	for _, c := range s.Children {
		c.Walk(fn)
	}
}

// Trace represents one showcase session
type Trace struct {
	ID        string
	StartTime time.Time
	EndTime   time.Time
	RootSpan  *Span
	Status    string // "running" or "completed"
}

// Manager stores and manages traces
type Manager struct {
	mu            sync.RWMutex
	traces        map[string]*Trace      // traceID -> Trace
	pendingSpans  map[string]*TraceEvent // spanID -> start event (waiting for end)
	orphanedSpans map[string][]*Span     // parentID -> []Span (spans waiting for parent)
	recentIDs     []string               // Ring buffer of recent trace IDs
	maxTraces     int                    // Max traces to keep (default 10)
	onChange      func()                 // Callback when trace state changes
	exporter      *OTLPExporter          // OTLP exporter for completed traces
	logger        *zap.Logger
}

// NewManager creates a new trace manager. Completed sessions are exported
// when OTEL_EXPORTER_OTLP_ENDPOINT is set.
func NewManager(maxTraces int) *Manager {
	m := newManager(maxTraces)
	exporter, err := NewOTLPExporter(context.Background())
	if err != nil {
		m.logger.Warn("otlp exporter disabled", zap.Error(err))
	}
	m.exporter = exporter
	return m
}

func newManager(maxTraces int) *Manager {
	if maxTraces <= 0 {
		maxTraces = 10
	}
	return &Manager{
		traces:        make(map[string]*Trace),
		pendingSpans:  make(map[string]*TraceEvent),
		orphanedSpans: make(map[string][]*Span),
		recentIDs:     make([]string, 0, maxTraces),
		maxTraces:     maxTraces,
		logger:        zap.NewNop(),
	}
}

// SetLogger routes export failures to logger.
func (m *Manager) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = logger
}

// HandleEvent processes an incoming trace event
// - Start events create the span immediately with Duration=0 (in-progress)
// - End events find the matching span and set its Duration
// Returns the affected Trace, or nil when the event was ignored
func (m *Manager) HandleEvent(event TraceEvent) *Trace {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case event.Type.IsStart():
		return m.handleStartEvent(event)
	case event.Type.IsEnd():
		return m.handleEndEvent(event)
	}
	return nil
}

// handleStartEvent must be called with m.mu held
func (m *Manager) handleStartEvent(event TraceEvent) *Trace {
	m.pendingSpans[event.SpanID] = &event

	span := &Span{
		TraceID:    event.TraceID,
		SpanID:     event.SpanID,
		ParentID:   event.ParentID,
		Name:       event.Name,
		StartTime:  event.Timestamp,
		Attributes: make(map[string]string, len(event.Attributes)),
	}
	for k, v := range event.Attributes {
		span.Attributes[k] = v
	}

	trace, exists := m.traces[event.TraceID]
	if !exists {
		trace = &Trace{
			ID:        event.TraceID,
			StartTime: event.Timestamp,
			Status:    "running",
		}
		m.traces[event.TraceID] = trace
		m.addToRecentIDs(event.TraceID)
	}

	switch {
	case event.Type == EventSessionStart:
		trace.StartTime = event.Timestamp
		trace.Status = "running"
		trace.RootSpan = span
		m.attachOrphanedChildren(span)
	case event.ParentID == "":
		if trace.RootSpan == nil {
			trace.RootSpan = span
			m.attachOrphanedChildren(span)
		}
	default:
		if parent := findSpanByID(trace.RootSpan, event.ParentID); parent != nil {
			parent.Children = append(parent.Children, span)
			m.attachOrphanedChildren(span)
		} else {
			// Parent not seen yet
			m.orphanedSpans[event.ParentID] = append(m.orphanedSpans[event.ParentID], span)
		}
	}

	m.callOnChange()
	return trace
}

// handleEndEvent must be called with m.mu held
func (m *Manager) handleEndEvent(event TraceEvent) *Trace {
	startEvent, found := m.pendingSpans[event.SpanID]
	if !found {
		return nil
	}
	delete(m.pendingSpans, event.SpanID)

	trace := m.traces[event.TraceID]
	if trace == nil {
		// Evicted while the span was open
		return nil
	}
	if span := findSpanByID(trace.RootSpan, event.SpanID); span != nil {
		span.Duration = event.Timestamp.Sub(startEvent.Timestamp)
		for k, v := range event.Attributes {
			span.Attributes[k] = v
		}
	}

	if event.Type == EventSessionEnd {
		trace.EndTime = event.Timestamp
		trace.Status = "completed"
		// Exported synchronously: this is the last event before the program exits
		if m.exporter != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := m.exporter.ExportTrace(ctx, trace); err != nil {
				m.logger.Warn("trace export failed", zap.String("trace_id", trace.ID), zap.Error(err))
			}
			cancel()
		}
	}

	m.callOnChange()
	return trace
}

// findSpanByID recursively searches for a span by ID in the trace tree
func findSpanByID(root *Span, spanID string) *Span {
	var found *Span
	root.Walk(func(s *Span) {
		if found == nil && s.SpanID == spanID {
			found = s
		}
	})
	return found
}

// attachOrphanedChildren attaches spans waiting for parent, recursively
func (m *Manager) attachOrphanedChildren(parent *Span) {
	orphans, exists := m.orphanedSpans[parent.SpanID]
	if !exists {
		return
	}
	parent.Children = append(parent.Children, orphans...)
	delete(m.orphanedSpans, parent.SpanID)
	for _, child := range orphans {
		m.attachOrphanedChildren(child)
	}
}

// addToRecentIDs adds a trace ID to the recent list, evicting old ones if needed
func (m *Manager) addToRecentIDs(traceID string) {
	m.recentIDs = append(m.recentIDs, traceID)
	if len(m.recentIDs) > m.maxTraces {
		oldestID := m.recentIDs[0]
		m.recentIDs = m.recentIDs[1:]
		delete(m.traces, oldestID)
	}
}

// callOnChange calls the onChange callback if set (must be called with lock held)
func (m *Manager) callOnChange() {
	if m.onChange != nil {
		m.onChange()
	}
}

// Trace returns a trace by ID
func (m *Manager) Trace(id string) *Trace {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.traces[id]
}

// ActiveTrace returns the currently running trace (if any)
func (m *Manager) ActiveTrace() *Trace {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.recentIDs) - 1; i >= 0; i-- {
		if trace := m.traces[m.recentIDs[i]]; trace != nil && trace.Status == "running" {
			return trace
		}
	}
	return nil
}

// RecentTraces returns recent traces (newest first)
func (m *Manager) RecentTraces() []*Trace {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Trace, 0, len(m.recentIDs))
	for i := len(m.recentIDs) - 1; i >= 0; i-- {
		if trace, exists := m.traces[m.recentIDs[i]]; exists {
			result = append(result, trace)
		}
	}
	return result
}

// OpenSpans returns the number of spans started but not yet ended.
func (m *Manager) OpenSpans() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pendingSpans)
}

// SetOnChange sets callback for state changes (thread-safe)
func (m *Manager) SetOnChange(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// Shutdown flushes pending exports and closes the OTLP exporter.
// Must be called before process exit to ensure traces are exported.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	exporter := m.exporter
	m.mu.Unlock()

	if exporter != nil {
		return exporter.Shutdown(ctx)
	}
	return nil
}
