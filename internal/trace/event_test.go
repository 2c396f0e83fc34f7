package trace

import (
	"encoding/hex"
	"testing"
)

func TestNewTraceID_GeneratesValidHex(t *testing.T) {
	id := NewTraceID()
	if len(id) != 32 {
		t.Errorf("NewTraceID: expected 32 characters, got %d", len(id))
	}
	if _, err := hex.DecodeString(id); err != nil {
		t.Errorf("NewTraceID: generated invalid hex: %v", err)
	}
	if NewTraceID() == id {
		t.Error("NewTraceID: generated duplicate IDs")
	}
}

func TestNewSpanID_GeneratesValidHex(t *testing.T) {
	id := NewSpanID()
	if len(id) != 16 {
		t.Errorf("NewSpanID: expected 16 characters, got %d", len(id))
	}
	if _, err := hex.DecodeString(id); err != nil {
		t.Errorf("NewSpanID: generated invalid hex: %v", err)
	}
	if NewSpanID() == id {
		t.Error("NewSpanID: generated duplicate IDs")
	}
}

func TestEventType_StartEndPairs(t *testing.T) {
	pairs := [][2]EventType{
		{EventSessionStart, EventSessionEnd},
		{EventMount, EventUnmount},
		{EventTransitionStart, EventTransitionEnd},
		{EventInteractionStart, EventInteractionEnd},
	}
	for _, p := range pairs {
		if !p[0].IsStart() || p[0].IsEnd() {
			t.Errorf("%s: expected start event", p[0])
		}
		if !p[1].IsEnd() || p[1].IsStart() {
			t.Errorf("%s: expected end event", p[1])
		}
	}
	if EventType("bogus").IsStart() || EventType("bogus").IsEnd() {
		t.Error("unknown event type classified")
	}
}
