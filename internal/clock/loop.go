package clock

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FireMsg is posted to the event loop when a Loop timer expires.
// The receiving Update must hand it back to Loop.Dispatch.
type FireMsg struct {
	ID uint64
}

// Loop is a real-time Scheduler for a Bubble Tea program. Expiry happens on a
// runtime timer goroutine, but the callback only runs when the program hands
// the resulting FireMsg to Dispatch, so widget state stays on the UI goroutine.
type Loop struct {
	mu     sync.Mutex
	post   func(tea.Msg)
	queued []FireMsg
	nextID uint64
	timers map[uint64]*loopTimer
}

type loopTimer struct {
	loop *Loop
	id   uint64
	rt   *time.Timer
	fn   func()
}

// NewLoop creates a Loop. Call SetPost once the tea.Program exists.
func NewLoop() *Loop {
	return &Loop{timers: make(map[uint64]*loopTimer)}
}

// SetPost sets the function used to deliver FireMsg (normally (*tea.Program).Send).
// Expiries that happened before a post function was set are flushed now.
func (l *Loop) SetPost(post func(tea.Msg)) {
	l.mu.Lock()
	l.post = post
	queued := l.queued
	l.queued = nil
	l.mu.Unlock()
	if post == nil {
		return
	}
	for _, msg := range queued {
		post(msg)
	}
}

// Now implements Scheduler.
func (l *Loop) Now() time.Time { return time.Now() }

// AfterFunc implements Scheduler.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	lt := &loopTimer{loop: l, id: l.nextID, fn: fn}
	l.timers[lt.id] = lt
	lt.rt = time.AfterFunc(d, func() { l.expire(lt.id) })
	return lt
}

func (l *Loop) expire(id uint64) {
	l.mu.Lock()
	if _, ok := l.timers[id]; !ok {
		l.mu.Unlock()
		return
	}
	post := l.post
	if post == nil {
		l.queued = append(l.queued, FireMsg{ID: id})
		l.mu.Unlock()
		return
	}
	l.mu.Unlock()
	post(FireMsg{ID: id})
}

// Dispatch runs the callback for msg if its timer is still live.
// Returns false for timers stopped after expiry but before delivery.
func (l *Loop) Dispatch(msg FireMsg) bool {
	l.mu.Lock()
	lt, ok := l.timers[msg.ID]
	delete(l.timers, msg.ID)
	l.mu.Unlock()
	if !ok {
		return false
	}
	lt.fn()
	return true
}

// Pending returns the number of live timers.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

// Close stops every live timer.
func (l *Loop) Close() {
	l.mu.Lock()
	timers := l.timers
	l.timers = make(map[uint64]*loopTimer)
	l.queued = nil
	l.mu.Unlock()
	for _, lt := range timers {
		lt.rt.Stop()
	}
}

func (t *loopTimer) Stop() bool {
	l := t.loop
	l.mu.Lock()
	_, ok := l.timers[t.id]
	delete(l.timers, t.id)
	l.mu.Unlock()
	t.rt.Stop()
	return ok
}
