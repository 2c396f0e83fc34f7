package trace

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// EventType identifies the kind of trace event
type EventType string

const (
	EventSessionStart     EventType = "session_start"     // Showcase session begins
	EventSessionEnd       EventType = "session_end"       // Showcase session ends
	EventMount            EventType = "widget_mount"      // Widget instance created
	EventUnmount          EventType = "widget_unmount"    // Widget instance torn down
	EventTransitionStart  EventType = "transition_start"  // Modal opening/closing began
	EventTransitionEnd    EventType = "transition_end"    // Transition settled
	EventInteractionStart EventType = "interaction_start" // Key, pointer or autoplay step
	EventInteractionEnd   EventType = "interaction_end"
)

// IsStart reports whether the event opens a span.
func (t EventType) IsStart() bool {
	switch t {
	case EventSessionStart, EventMount, EventTransitionStart, EventInteractionStart:
		return true
	}
	return false
}

// IsEnd reports whether the event closes a span.
func (t EventType) IsEnd() bool {
	switch t {
	case EventSessionEnd, EventUnmount, EventTransitionEnd, EventInteractionEnd:
		return true
	}
	return false
}

// TraceEvent represents a single event in a showcase session trace
type TraceEvent struct {
	TraceID    string            `json:"trace_id"`   // Unique ID for the whole session
	SpanID     string            `json:"span_id"`    // Unique ID for this span
	ParentID   string            `json:"parent_id"`  // Parent span ID (empty for root)
	Type       EventType         `json:"type"`       // Event type
	Name       string            `json:"name"`       // Human-readable name (widget id, phase, action)
	Timestamp  time.Time         `json:"timestamp"`  // When the event occurred
	Attributes map[string]string `json:"attributes"` // Additional metadata
}

// NewTraceID generates a random 16-byte trace ID as hex string (32 characters)
func NewTraceID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// NewSpanID generates a random 8-byte span ID as hex string (16 characters)
func NewSpanID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}
