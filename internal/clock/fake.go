package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a Scheduler with manually advanced time. Callbacks run synchronously
// inside Advance, in deadline order (ties broken by scheduling order).
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending []*fakeTimer
}

type fakeTimer struct {
	owner    *Fake
	deadline time.Time
	seq      uint64
	fn       func()
	done     bool
}

// NewFake returns a Fake starting at a fixed epoch.
func NewFake() *Fake {
	return &Fake{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// AfterFunc schedules fn to run once the clock has advanced by d.
func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d < 0 {
		d = 0
	}
	f.seq++
	t := &fakeTimer{owner: f, deadline: f.now.Add(d), seq: f.seq, fn: fn}
	f.pending = append(f.pending, t)
	return t
}

// Advance moves the clock forward by d, firing every timer that comes due.
// Timers scheduled by a firing callback also fire if they fall inside the window.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	f.mu.Unlock()

	for {
		t := f.popDue(target)
		if t == nil {
			break
		}
		t.fn()
	}

	f.mu.Lock()
	f.now = target
	f.mu.Unlock()
}

// popDue removes and returns the earliest timer due at or before target,
// moving the clock to its deadline.
func (f *Fake) popDue(target time.Time) *fakeTimer {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.pending) == 0 {
		return nil
	}
	sort.SliceStable(f.pending, func(i, j int) bool {
		a, b := f.pending[i], f.pending[j]
		if !a.deadline.Equal(b.deadline) {
			return a.deadline.Before(b.deadline)
		}
		return a.seq < b.seq
	})
	next := f.pending[0]
	if next.deadline.After(target) {
		return nil
	}
	f.pending = f.pending[1:]
	next.done = true
	f.now = next.deadline
	return next
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

func (t *fakeTimer) Stop() bool {
	f := t.owner
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	for i, p := range f.pending {
		if p == t {
			f.pending = append(f.pending[:i], f.pending[i+1:]...)
			break
		}
	}
	return true
}
