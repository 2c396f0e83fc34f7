// Package motion models the platform's reduced-motion preference as a
// subscribable boolean. Widgets read it on construction, subscribe for
// changes, and release the subscription on teardown.
package motion

// Source reports the reduced-motion preference and notifies on change.
type Source interface {
	ReducedMotion() bool
	// Subscribe registers fn for changes. The returned func unsubscribes and
	// is safe to call more than once.
	Subscribe(fn func(reduced bool)) (unsubscribe func())
}

// Static is a Source that never changes.
type Static bool

func (s Static) ReducedMotion() bool { return bool(s) }

func (Static) Subscribe(func(bool)) func() { return func() {} }

// Setting is an in-process Source whose value is changed with Set.
// Like the widgets it feeds, it is meant to be used from one goroutine.
type Setting struct {
	reduced bool
	nextID  int
	subs    map[int]func(bool)
}

// NewSetting creates a Setting with the given initial value.
func NewSetting(reduced bool) *Setting {
	return &Setting{reduced: reduced, subs: make(map[int]func(bool))}
}

// ReducedMotion implements Source.
func (s *Setting) ReducedMotion() bool { return s.reduced }

// Subscribe implements Source.
func (s *Setting) Subscribe(fn func(bool)) func() {
	s.nextID++
	id := s.nextID
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

// Set changes the preference, notifying subscribers only when it differs.
func (s *Setting) Set(reduced bool) {
	if s.reduced == reduced {
		return
	}
	s.reduced = reduced
	for _, id := range s.subscriberIDs() {
		if fn, ok := s.subs[id]; ok {
			fn(reduced)
		}
	}
}

// Toggle flips the preference and returns the new value.
func (s *Setting) Toggle() bool {
	s.Set(!s.reduced)
	return s.reduced
}

// Subscribers returns the number of live subscriptions.
func (s *Setting) Subscribers() int { return len(s.subs) }

// subscriberIDs snapshots ids in registration order so callbacks may unsubscribe.
func (s *Setting) subscriberIDs() []int {
	ids := make([]int, 0, len(s.subs))
	for id := 1; id <= s.nextID; id++ {
		if _, ok := s.subs[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
