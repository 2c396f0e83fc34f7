package clock

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestFake_FiresInDeadlineOrder(t *testing.T) {
	f := NewFake()
	var got []string
	f.AfterFunc(300*time.Millisecond, func() { got = append(got, "c") })
	f.AfterFunc(100*time.Millisecond, func() { got = append(got, "a") })
	f.AfterFunc(200*time.Millisecond, func() { got = append(got, "b") })

	f.Advance(250 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 1, f.Pending())

	f.Advance(50 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 0, f.Pending())
}

func TestFake_StopPreventsFiring(t *testing.T) {
	f := NewFake()
	fired := false
	tm := f.AfterFunc(time.Second, func() { fired = true })

	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop(), "second stop reports already stopped")
	f.Advance(2 * time.Second)
	assert.False(t, fired)
	assert.Equal(t, 0, f.Pending())
}

func TestFake_RearmingCallbackFiresWithinWindow(t *testing.T) {
	f := NewFake()
	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		f.AfterFunc(time.Second, tick)
	}
	f.AfterFunc(time.Second, tick)

	f.Advance(3500 * time.Millisecond)
	assert.Equal(t, 3, ticks)
	assert.Equal(t, 1, f.Pending())
}

func TestFake_NowTracksFiringDeadline(t *testing.T) {
	f := NewFake()
	start := f.Now()
	var at time.Time
	f.AfterFunc(400*time.Millisecond, func() { at = f.Now() })

	f.Advance(time.Second)
	assert.Equal(t, 400*time.Millisecond, at.Sub(start))
	assert.Equal(t, time.Second, f.Now().Sub(start))
}

func TestLoop_DispatchRunsCallbackOnCaller(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := NewLoop()
	msgs := make(chan tea.Msg, 1)
	l.SetPost(func(m tea.Msg) { msgs <- m })

	fired := false
	l.AfterFunc(5*time.Millisecond, func() { fired = true })

	var msg tea.Msg
	select {
	case msg = <-msgs:
	case <-time.After(time.Second):
		t.Fatal("timer never posted")
	}
	fm, ok := msg.(FireMsg)
	require.True(t, ok)
	assert.False(t, fired, "callback must wait for Dispatch")

	assert.True(t, l.Dispatch(fm))
	assert.True(t, fired)
	assert.False(t, l.Dispatch(fm), "dispatch is single-shot")
	assert.Equal(t, 0, l.Pending())
}

func TestLoop_StoppedTimerIsNotDispatched(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := NewLoop()
	msgs := make(chan tea.Msg, 1)
	l.SetPost(func(m tea.Msg) { msgs <- m })

	fired := false
	tm := l.AfterFunc(5*time.Millisecond, func() { fired = true })
	fm := (<-msgs).(FireMsg)

	assert.True(t, tm.Stop())
	assert.False(t, l.Dispatch(fm))
	assert.False(t, fired)
}

func TestLoop_QueuesUntilPostIsSet(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := NewLoop()
	l.AfterFunc(time.Millisecond, func() {})
	time.Sleep(20 * time.Millisecond)

	var got []tea.Msg
	l.SetPost(func(m tea.Msg) { got = append(got, m) })
	require.Len(t, got, 1)
	assert.True(t, l.Dispatch(got[0].(FireMsg)))
}

func TestLoop_CloseStopsEverything(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := NewLoop()
	posted := make(chan tea.Msg, 4)
	l.SetPost(func(m tea.Msg) { posted <- m })
	l.AfterFunc(time.Hour, func() {})
	l.AfterFunc(time.Hour, func() {})
	require.Equal(t, 2, l.Pending())

	l.Close()
	assert.Equal(t, 0, l.Pending())
	assert.Empty(t, posted)
}
