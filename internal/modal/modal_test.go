package modal

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aishowcase/internal/a11y"
	"aishowcase/internal/clock"
	"aishowcase/internal/focus"
	"aishowcase/internal/input"
	"aishowcase/internal/motion"
)

type phaseLog []Phase

func (l *phaseLog) record(_, to Phase) { *l = append(*l, to) }

type harness struct {
	clock  *clock.Fake
	motion *motion.Setting
	focus  *focus.Manager
	phases *phaseLog
	m      *Modal
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{
		clock:  clock.NewFake(),
		motion: motion.NewSetting(false),
		focus:  &focus.Manager{Order: []string{"open-button", "other"}},
		phases: &phaseLog{},
	}
	h.focus.SetFocus("open-button")
	if opts.ID == "" {
		opts.ID = "details"
	}
	if opts.Focusables == nil {
		opts.Focusables = []string{"name", "submit"}
	}
	opts.Scheduler = h.clock
	opts.Motion = h.motion
	opts.Focus = h.focus
	opts.OnPhaseChange = h.phases.record
	h.m = New(opts)
	t.Cleanup(h.m.Dispose)
	return h
}

func key(k input.Key) *input.KeyEvent { return input.NewKeyEvent(k) }

func TestModal_PhaseSequenceAndInitialFocus(t *testing.T) {
	h := newHarness(t, Options{})

	h.m.Open()
	assert.Equal(t, PhaseOpening, h.m.Phase())
	assert.True(t, h.m.IsOpen())
	assert.True(t, h.m.IsAnimating())
	assert.Equal(t, "open-button", h.focus.Current, "focus must not move mid-transition")

	h.clock.Advance(DefaultDuration - time.Millisecond)
	assert.Equal(t, PhaseOpening, h.m.Phase())
	h.clock.Advance(time.Millisecond)
	assert.Equal(t, PhaseOpen, h.m.Phase())
	assert.Equal(t, "details-close", h.focus.Current)

	h.m.Close()
	assert.Equal(t, PhaseClosing, h.m.Phase())
	assert.True(t, h.m.Visible())
	h.clock.Advance(DefaultDuration)
	assert.Equal(t, PhaseClosed, h.m.Phase())
	assert.False(t, h.m.Visible())

	assert.Equal(t, phaseLog{PhaseOpening, PhaseOpen, PhaseClosing, PhaseClosed}, *h.phases)
	assert.Equal(t, "open-button", h.focus.Current, "focus restored to trigger")
	assert.False(t, h.focus.Has("details-close"), "dialog focusables unmounted")
}

func TestModal_CustomInitialFocus(t *testing.T) {
	h := newHarness(t, Options{InitialFocus: "name"})
	h.m.Open()
	h.clock.Advance(DefaultDuration)
	assert.Equal(t, "name", h.focus.Current)
}

func TestModal_Idempotence(t *testing.T) {
	h := newHarness(t, Options{})

	h.m.Open()
	h.m.Open()
	assert.Equal(t, 1, h.clock.Pending())
	h.clock.Advance(DefaultDuration)
	h.m.Open()
	assert.Equal(t, PhaseOpen, h.m.Phase())
	assert.Equal(t, phaseLog{PhaseOpening, PhaseOpen}, *h.phases)

	h.m.Close()
	h.m.Close()
	assert.Equal(t, 1, h.clock.Pending())
	h.clock.Advance(DefaultDuration)
	h.m.Close()
	assert.Equal(t, PhaseClosed, h.m.Phase())
	assert.Equal(t, phaseLog{PhaseOpening, PhaseOpen, PhaseClosing, PhaseClosed}, *h.phases)
}

func TestModal_OpenWhileClosingIsIgnored(t *testing.T) {
	h := newHarness(t, Options{})
	h.m.Open()
	h.clock.Advance(DefaultDuration)
	h.m.Close()
	h.m.Open()
	assert.Equal(t, PhaseClosing, h.m.Phase())
	h.clock.Advance(DefaultDuration)
	assert.Equal(t, PhaseClosed, h.m.Phase())
}

func TestModal_CloseDuringOpeningCancelsTimer(t *testing.T) {
	h := newHarness(t, Options{})
	h.m.Open()
	h.clock.Advance(50 * time.Millisecond)
	h.m.Close()
	assert.Equal(t, PhaseClosing, h.m.Phase())
	assert.Equal(t, 1, h.clock.Pending(), "opening timer superseded")

	h.clock.Advance(DefaultDuration)
	assert.Equal(t, PhaseClosed, h.m.Phase())
	assert.Equal(t, phaseLog{PhaseOpening, PhaseClosing, PhaseClosed}, *h.phases)
	assert.Equal(t, "open-button", h.focus.Current)
}

func TestModal_FocusContainment(t *testing.T) {
	h := newHarness(t, Options{})
	h.m.Open()
	h.clock.Advance(DefaultDuration)
	require.Equal(t, []string{"details-close", "name", "submit"}, h.m.Focusables())

	tests := []struct {
		key  input.Key
		want string
	}{
		{input.KeyTab, "name"},
		{input.KeyTab, "submit"},
		{input.KeyTab, "details-close"}, // last -> first
		{input.KeyShiftTab, "submit"},   // first -> last
		{input.KeyShiftTab, "name"},
	}
	for i, tt := range tests {
		ev := key(tt.key)
		require.True(t, h.m.HandleKey(ev), "step %d", i)
		assert.True(t, ev.DefaultPrevented(), "step %d", i)
		assert.Equal(t, tt.want, h.focus.Current, "step %d", i)
	}
}

func TestModal_TabDuringOpeningStaysInside(t *testing.T) {
	h := newHarness(t, Options{})
	h.m.Open()
	require.True(t, h.m.HandleKey(key(input.KeyTab)))
	assert.Equal(t, "details-close", h.focus.Current)
	require.True(t, h.m.HandleKey(key(input.KeyShiftTab)))
	assert.Equal(t, "submit", h.focus.Current)
}

func TestModal_KeysIgnoredWhenClosed(t *testing.T) {
	h := newHarness(t, Options{})
	ev := key(input.KeyTab)
	assert.False(t, h.m.HandleKey(ev))
	assert.False(t, ev.DefaultPrevented())
	assert.Equal(t, "open-button", h.focus.Current)
}

func TestModal_EscapeCloses(t *testing.T) {
	for _, phaseAtEscape := range []Phase{PhaseOpening, PhaseOpen} {
		t.Run(phaseAtEscape.String(), func(t *testing.T) {
			var closes int
			h := newHarness(t, Options{OnClose: func() { closes++ }})
			h.m.Open()
			if phaseAtEscape == PhaseOpen {
				h.clock.Advance(DefaultDuration)
			}
			ev := key(input.KeyEscape)
			require.True(t, h.m.HandleKey(ev))
			assert.True(t, ev.DefaultPrevented())
			assert.Equal(t, PhaseClosing, h.m.Phase())
			assert.Equal(t, 1, closes)
		})
	}
}

func TestModal_BackdropDismissal(t *testing.T) {
	h := newHarness(t, Options{})
	h.m.Open()
	h.clock.Advance(DefaultDuration)
	h.m.ActivateBackdrop()
	assert.Equal(t, PhaseClosing, h.m.Phase())
	h.clock.Advance(DefaultDuration)

	for _, k := range []input.Key{input.KeyEnter, input.KeySpace} {
		h.m.Open()
		h.clock.Advance(DefaultDuration)
		ev := key(k)
		require.True(t, h.m.HandleBackdropKey(ev), k.String())
		assert.True(t, ev.DefaultPrevented())
		assert.Equal(t, PhaseClosing, h.m.Phase(), k.String())
		h.clock.Advance(DefaultDuration)
	}

	h.m.Open()
	h.clock.Advance(DefaultDuration)
	assert.False(t, h.m.HandleBackdropKey(key(input.KeyLeft)))
	assert.Equal(t, PhaseOpen, h.m.Phase())
}

func TestModal_RestorationSkipsMissingTrigger(t *testing.T) {
	h := newHarness(t, Options{})
	h.m.Open()
	h.clock.Advance(DefaultDuration)
	h.focus.Remove("open-button")

	h.m.Close()
	h.clock.Advance(DefaultDuration)
	assert.Equal(t, PhaseClosed, h.m.Phase())
	assert.Equal(t, "", h.focus.Current)
}

func TestModal_ReducedMotionIsInstant(t *testing.T) {
	h := newHarness(t, Options{})
	h.motion.Set(true)
	assert.Equal(t, time.Duration(0), h.m.TransitionDuration())

	h.m.Open()
	assert.Equal(t, PhaseOpen, h.m.Phase())
	assert.Equal(t, "details-close", h.focus.Current)
	h.m.Close()
	assert.Equal(t, PhaseClosed, h.m.Phase())
	assert.Equal(t, "open-button", h.focus.Current)

	assert.Equal(t, phaseLog{PhaseOpening, PhaseOpen, PhaseClosing, PhaseClosed}, *h.phases)
	assert.Equal(t, 0, h.clock.Pending())
}

func TestModal_Controlled(t *testing.T) {
	var requests, closes int
	h := newHarness(t, Options{
		Mode:          ModeControlled,
		OnOpenRequest: func() { requests++ },
		OnClose:       func() { closes++ },
	})

	h.m.Open()
	assert.Equal(t, 1, requests)
	assert.Equal(t, PhaseClosed, h.m.Phase(), "controlled modal waits for SetOpen")

	require.NoError(t, h.m.SetOpen(true))
	h.clock.Advance(DefaultDuration)
	assert.Equal(t, PhaseOpen, h.m.Phase())

	h.m.HandleKey(key(input.KeyEscape))
	h.m.ActivateBackdrop()
	assert.Equal(t, 2, closes)
	assert.Equal(t, PhaseOpen, h.m.Phase(), "close requests are not applied locally")

	require.NoError(t, h.m.SetOpen(false))
	h.clock.Advance(DefaultDuration)
	assert.Equal(t, PhaseClosed, h.m.Phase())
	assert.Equal(t, "open-button", h.focus.Current)
}

func TestModal_SetOpenWrongMode(t *testing.T) {
	h := newHarness(t, Options{})
	err := h.m.SetOpen(true)
	assert.True(t, errors.Is(err, ErrWrongMode))
	assert.Equal(t, PhaseClosed, h.m.Phase())
}

func TestModal_SetFocusablesWhileOpen(t *testing.T) {
	h := newHarness(t, Options{})
	h.m.Open()
	h.clock.Advance(DefaultDuration)

	h.m.SetFocusables([]string{"email"})
	assert.False(t, h.focus.Has("name"))
	assert.True(t, h.focus.Has("email"))
	h.m.HandleKey(key(input.KeyTab))
	assert.Equal(t, "email", h.focus.Current)
}

func TestModal_DisposeCancelsTransition(t *testing.T) {
	h := newHarness(t, Options{})
	h.m.Open()
	require.Equal(t, 1, h.clock.Pending())
	require.Equal(t, 1, h.motion.Subscribers())

	h.m.Dispose()
	h.m.Dispose()
	assert.Equal(t, 0, h.clock.Pending())
	assert.Equal(t, 0, h.motion.Subscribers())
	assert.False(t, h.focus.Has("details-close"))

	h.clock.Advance(time.Second)
	assert.Equal(t, PhaseOpening, h.m.Phase(), "no transition after teardown")
}

func TestModal_NoSchedulerCompletesSynchronously(t *testing.T) {
	m := New(Options{ID: "sync"})
	defer m.Dispose()
	m.Open()
	assert.Equal(t, PhaseOpen, m.Phase())
	assert.Equal(t, "sync-close", m.FocusManager().Current)
}

func TestModal_DefaultIDIsUnique(t *testing.T) {
	a, b := New(Options{}), New(Options{})
	defer a.Dispose()
	defer b.Dispose()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Contains(t, a.ID(), "dialog-")
}

func TestModal_Tree(t *testing.T) {
	h := newHarness(t, Options{Title: "Tool details"})
	assert.Nil(t, h.m.Tree())

	h.m.Open()
	want := &a11y.Node{
		ID:   "details",
		Role: a11y.RoleDialog,
		Attrs: map[string]string{
			a11y.AttrModal:      "true",
			a11y.AttrLabelledBy: "details-title",
		},
		Children: []*a11y.Node{
			{ID: "details-title", Role: a11y.RoleHeading, Attrs: map[string]string{a11y.AttrLabel: "Tool details"}},
			{ID: "details-close", Role: a11y.RoleButton, Attrs: map[string]string{a11y.AttrLabel: "Close"}},
		},
	}
	if diff := cmp.Diff(want, h.m.Tree()); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestModal_ClosedFromPhaseCallback(t *testing.T) {
	for _, tc := range []struct {
		name    string
		closeOn Phase
		want    phaseLog
	}{
		{"on opening", PhaseOpening, phaseLog{PhaseOpening, PhaseClosing, PhaseClosed}},
		{"on open", PhaseOpen, phaseLog{PhaseOpening, PhaseOpen, PhaseClosing, PhaseClosed}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, Options{})
			h.m.opts.OnPhaseChange = func(from, to Phase) {
				h.phases.record(from, to)
				if to == tc.closeOn {
					h.m.Close()
				}
			}

			h.m.Open()
			h.clock.Advance(DefaultDuration)
			assert.Equal(t, "open-button", h.focus.Current, "focus must not enter a closing dialog")
			assert.LessOrEqual(t, h.clock.Pending(), 1)

			h.clock.Advance(DefaultDuration)
			assert.Equal(t, PhaseClosed, h.m.Phase())
			assert.Equal(t, 0, h.clock.Pending())
			assert.Equal(t, tc.want, *h.phases)
			assert.Equal(t, "open-button", h.focus.Current)
		})
	}
}

func TestModal_ReopenedFromClosedCallback(t *testing.T) {
	h := newHarness(t, Options{})
	reopened := false
	h.m.opts.OnPhaseChange = func(from, to Phase) {
		h.phases.record(from, to)
		if to == PhaseClosed && !reopened {
			reopened = true
			h.m.Open()
		}
	}

	h.m.Open()
	h.clock.Advance(DefaultDuration)
	h.m.Close()
	h.clock.Advance(DefaultDuration)
	assert.Equal(t, PhaseOpening, h.m.Phase())
	assert.Equal(t, 1, h.clock.Pending())

	h.clock.Advance(DefaultDuration)
	assert.Equal(t, "details-close", h.focus.Current)
	h.m.Close()
	h.clock.Advance(DefaultDuration)
	assert.Equal(t, "open-button", h.focus.Current, "trigger captured after restoration")
}

func TestModal_DisposedFromPhaseCallback(t *testing.T) {
	h := newHarness(t, Options{})
	h.m.opts.OnPhaseChange = func(from, to Phase) {
		h.phases.record(from, to)
		if to == PhaseOpening {
			h.m.Dispose()
		}
	}

	h.m.Open()
	assert.Equal(t, 0, h.clock.Pending())
}
