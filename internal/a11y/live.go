package a11y

import "fmt"

// Politeness is the urgency of a live-region announcement.
type Politeness int

const (
	PolitenessPolite Politeness = iota
	PolitenessAssertive
	PolitenessOff
)

func (p Politeness) String() string {
	switch p {
	case PolitenessAssertive:
		return "assertive"
	case PolitenessOff:
		return "off"
	default:
		return "polite"
	}
}

// ParsePoliteness parses "polite", "assertive" or "off".
func ParsePoliteness(s string) (Politeness, error) {
	switch s {
	case "", "polite":
		return PolitenessPolite, nil
	case "assertive":
		return PolitenessAssertive, nil
	case "off":
		return PolitenessOff, nil
	default:
		return PolitenessPolite, fmt.Errorf("unknown politeness %q", s)
	}
}

// Announcement is one message delivered to assistive technology.
type Announcement struct {
	Message    string
	Politeness Politeness
}

// Announcer receives live-region announcements.
type Announcer interface {
	Announce(message string, politeness Politeness)
}

// AnnouncerFunc adapts a function to Announcer.
type AnnouncerFunc func(message string, politeness Politeness)

func (f AnnouncerFunc) Announce(message string, politeness Politeness) { f(message, politeness) }

// Discard drops every announcement.
var Discard Announcer = AnnouncerFunc(func(string, Politeness) {})

// LiveRegion keeps the most recent announcements so they stay observable,
// the way a rendered aria-live element keeps its text content.
type LiveRegion struct {
	history []Announcement
	limit   int
}

// NewLiveRegion creates a live region retaining up to limit announcements (min 1).
func NewLiveRegion(limit int) *LiveRegion {
	if limit < 1 {
		limit = 1
	}
	return &LiveRegion{limit: limit}
}

// Announce implements Announcer. Off-level messages are not retained.
func (r *LiveRegion) Announce(message string, politeness Politeness) {
	if politeness == PolitenessOff {
		return
	}
	r.history = append(r.history, Announcement{Message: message, Politeness: politeness})
	if len(r.history) > r.limit {
		r.history = r.history[len(r.history)-r.limit:]
	}
}

// Last returns the most recent announcement.
func (r *LiveRegion) Last() (Announcement, bool) {
	if len(r.history) == 0 {
		return Announcement{}, false
	}
	return r.history[len(r.history)-1], true
}

// History returns a copy of the retained announcements, oldest first.
func (r *LiveRegion) History() []Announcement {
	out := make([]Announcement, len(r.history))
	copy(out, r.history)
	return out
}
