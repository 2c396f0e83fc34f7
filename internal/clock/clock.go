// Package clock provides the timer abstraction shared by the widgets.
//
// Widgets never call time.AfterFunc directly. They ask a Scheduler for a
// Timer and keep the handle so a superseded or torn-down timer can be
// stopped. Tests drive a Fake; the terminal host uses a Loop so callbacks run
// on the UI goroutine.
package clock

import "time"

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels the callback. Returns false if it already fired or was stopped.
	Stop() bool
}

// Scheduler hands out timers.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Stop stops t if it is non-nil. Convenience for widget teardown paths.
func Stop(t Timer) {
	if t != nil {
		t.Stop()
	}
}
