// Package modal implements a headless dialog: an explicit
// Closed/Opening/Open/Closing state machine, focus containment while open,
// initial focus after the opening transition, Escape and backdrop dismissal,
// and focus restoration to the element that opened it.
package modal

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aishowcase/internal/a11y"
	"aishowcase/internal/clock"
	"aishowcase/internal/focus"
	"aishowcase/internal/input"
	"aishowcase/internal/motion"
)

// DefaultDuration is the opening and closing transition length.
const DefaultDuration = 200 * time.Millisecond

// ErrWrongMode is returned by SetOpen on a modal that manages its own state.
var ErrWrongMode = errors.New("modal: operation not valid in this mode")

// Phase is the dialog's lifecycle state.
type Phase int

const (
	PhaseClosed Phase = iota
	PhaseOpening
	PhaseOpen
	PhaseClosing
)

func (p Phase) String() string {
	switch p {
	case PhaseOpening:
		return "opening"
	case PhaseOpen:
		return "open"
	case PhaseClosing:
		return "closing"
	default:
		return "closed"
	}
}

// Mode selects who owns the open/closed state. It is fixed at construction.
type Mode int

const (
	// ModeUncontrolled: Open and Close drive the state machine directly.
	ModeUncontrolled Mode = iota
	// ModeControlled: Open and Close only report requests through
	// OnOpenRequest and OnClose; the owner applies them with SetOpen.
	ModeControlled
)

func (m Mode) String() string {
	if m == ModeControlled {
		return "controlled"
	}
	return "uncontrolled"
}

// Options configures a Modal.
type Options struct {
	// ID prefixes the dialog's element ids. Defaults to "dialog-<uuid>".
	ID    string
	Title string
	Mode  Mode

	// Duration of each transition. Zero means DefaultDuration.
	Duration  time.Duration
	Scheduler clock.Scheduler
	Motion    motion.Source

	// Focus is the page focus manager. The dialog's focusables join it while
	// the dialog is visible.
	Focus *focus.Manager
	// Focusables lists the dialog's focusable ids in tab order. The close
	// button is prepended unless already listed.
	Focusables []string
	// InitialFocus is focused when Open is reached. Defaults to the close button.
	InitialFocus string

	OnOpenRequest func()
	OnClose       func()
	OnPhaseChange func(from, to Phase)

	Logger *zap.Logger
}

// Modal is a dialog state machine. Not safe for concurrent use.
type Modal struct {
	opts       Options
	focus      *focus.Manager
	focusables []string

	phase       Phase
	trigger     string
	mounted     bool
	reduced     bool
	timer       clock.Timer
	unsubscribe func()
	disposed    bool
}

// New creates a closed modal. Call Dispose on teardown.
func New(opts Options) *Modal {
	if opts.ID == "" {
		opts.ID = "dialog-" + uuid.NewString()[:8]
	}
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.Motion == nil {
		opts.Motion = motion.Static(false)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	m := &Modal{opts: opts, focus: opts.Focus}
	if m.focus == nil {
		m.focus = &focus.Manager{}
	}
	if m.opts.InitialFocus == "" {
		m.opts.InitialFocus = m.CloseButtonID()
	}
	m.focusables = m.withCloseButton(opts.Focusables)
	m.reduced = opts.Motion.ReducedMotion()
	m.unsubscribe = opts.Motion.Subscribe(func(reduced bool) { m.reduced = reduced })
	return m
}

// ID returns the dialog id.
func (m *Modal) ID() string { return m.opts.ID }

// Title returns the dialog title.
func (m *Modal) Title() string { return m.opts.Title }

// TitleID is the id of the heading that labels the dialog.
func (m *Modal) TitleID() string { return m.opts.ID + "-title" }

// CloseButtonID is the id of the built-in close button.
func (m *Modal) CloseButtonID() string { return m.opts.ID + "-close" }

// Mode returns the ownership mode chosen at construction.
func (m *Modal) Mode() Mode { return m.opts.Mode }

// Phase returns the current lifecycle phase.
func (m *Modal) Phase() Phase { return m.phase }

// IsOpen reports whether the dialog is Opening or Open.
func (m *Modal) IsOpen() bool { return m.phase == PhaseOpening || m.phase == PhaseOpen }

// IsAnimating reports whether a transition is in flight.
func (m *Modal) IsAnimating() bool { return m.phase == PhaseOpening || m.phase == PhaseClosing }

// Visible reports whether the dialog should be drawn.
func (m *Modal) Visible() bool { return m.phase != PhaseClosed }

// Trigger returns the element that had focus when the dialog was opened.
func (m *Modal) Trigger() string { return m.trigger }

// Focusables returns the dialog's focusable ids in tab order.
func (m *Modal) Focusables() []string { return m.focusables }

// FocusManager returns the focus manager the dialog moves focus through.
func (m *Modal) FocusManager() *focus.Manager { return m.focus }

// TransitionDuration is the length of the next transition; zero under
// reduced motion or without a scheduler.
func (m *Modal) TransitionDuration() time.Duration {
	if m.reduced || m.opts.Scheduler == nil {
		return 0
	}
	return m.opts.Duration
}

// Open requests the dialog to open. Uncontrolled dialogs start the opening
// transition; controlled ones call OnOpenRequest. No-op unless closed.
func (m *Modal) Open() {
	if m.disposed || m.phase != PhaseClosed {
		return
	}
	if m.opts.Mode == ModeControlled {
		if m.opts.OnOpenRequest != nil {
			m.opts.OnOpenRequest()
		}
		return
	}
	m.open()
}

// Close requests the dialog to close. Uncontrolled dialogs start the closing
// transition and then call OnClose; controlled ones only call OnClose.
// No-op while closed or closing.
func (m *Modal) Close() {
	if m.disposed || !m.IsOpen() {
		return
	}
	if m.opts.Mode == ModeControlled {
		if m.opts.OnClose != nil {
			m.opts.OnClose()
		}
		return
	}
	m.close()
	if m.opts.OnClose != nil {
		m.opts.OnClose()
	}
}

// SetOpen applies the owner's state to a controlled dialog.
func (m *Modal) SetOpen(open bool) error {
	if m.opts.Mode != ModeControlled {
		return ErrWrongMode
	}
	if m.disposed {
		return nil
	}
	if open {
		m.open()
	} else {
		m.close()
	}
	return nil
}

// SetFocusables replaces the dialog's focusable ids. While the dialog is
// visible the page focus manager is updated too.
func (m *Modal) SetFocusables(ids []string) {
	next := m.withCloseButton(ids)
	if m.mounted {
		keep := focus.Trap{IDs: next}
		for _, id := range m.focusables {
			if !keep.Contains(id) {
				m.focus.Remove(id)
			}
		}
		m.focus.Add(next...)
	}
	m.focusables = next
}

// HandleKey applies the dialog's keyboard contract: Tab and Shift+Tab cycle
// within the dialog and Escape closes it. Handled keys are marked with
// PreventDefault so the page never sees them.
func (m *Modal) HandleKey(ev *input.KeyEvent) bool {
	switch m.phase {
	case PhaseOpening, PhaseOpen:
	case PhaseClosing:
		// Focus stays put until the dialog is gone.
		if ev.Key == input.KeyTab || ev.Key == input.KeyShiftTab {
			ev.PreventDefault()
			return true
		}
		return false
	default:
		return false
	}

	trap := focus.Trap{IDs: m.focusables}
	switch ev.Key {
	case input.KeyTab:
		m.focus.SetFocus(trap.Next(m.focus.Current))
	case input.KeyShiftTab:
		m.focus.SetFocus(trap.Prev(m.focus.Current))
	case input.KeyEscape:
		m.Close()
	default:
		return false
	}
	ev.PreventDefault()
	return true
}

// ActivateBackdrop handles a pointer activation outside the dialog box.
func (m *Modal) ActivateBackdrop() {
	if m.IsOpen() {
		m.Close()
	}
}

// HandleBackdropKey handles Enter or Space while the backdrop has focus.
func (m *Modal) HandleBackdropKey(ev *input.KeyEvent) bool {
	if !m.IsOpen() || (ev.Key != input.KeyEnter && ev.Key != input.KeySpace) {
		return false
	}
	ev.PreventDefault()
	m.ActivateBackdrop()
	return true
}

// Dispose cancels any pending transition, releases the motion subscription
// and unmounts the dialog's focusables. Further calls are no-ops.
func (m *Modal) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	m.stopTimer()
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.unmount()
}

// Tree returns the dialog's accessibility tree, or nil while closed.
func (m *Modal) Tree() *a11y.Node {
	if !m.Visible() {
		return nil
	}
	root := a11y.NewNode(m.opts.ID, a11y.RoleDialog).
		Set(a11y.AttrModal, a11y.Bool(true)).
		Set(a11y.AttrLabelledBy, m.TitleID())
	root.Append(
		a11y.NewNode(m.TitleID(), a11y.RoleHeading).Set(a11y.AttrLabel, m.opts.Title),
		a11y.NewNode(m.CloseButtonID(), a11y.RoleButton).Set(a11y.AttrLabel, "Close"),
	)
	return root
}

func (m *Modal) open() {
	// Only valid from Closed; a closing dialog finishes first.
	if m.phase != PhaseClosed {
		return
	}
	m.trigger = m.focus.Current
	m.mount()
	m.setPhase(PhaseOpening)
	// OnPhaseChange may already have closed or disposed the dialog.
	if m.phase != PhaseOpening || m.disposed {
		return
	}
	m.schedule(m.finishOpen)
}

func (m *Modal) finishOpen() {
	m.timer = nil
	m.setPhase(PhaseOpen)
	if m.phase != PhaseOpen || m.disposed {
		return
	}
	if !m.focus.SetFocus(m.opts.InitialFocus) && len(m.focusables) > 0 {
		m.focus.SetFocus(m.focusables[0])
	}
}

func (m *Modal) close() {
	if !m.IsOpen() {
		return
	}
	m.stopTimer()
	m.setPhase(PhaseClosing)
	if m.phase != PhaseClosing || m.disposed {
		return
	}
	m.schedule(m.finishClose)
}

// finishClose hands focus back before announcing Closed, so an observer that
// reopens the dialog captures the restored trigger.
func (m *Modal) finishClose() {
	m.timer = nil
	m.unmount()
	trigger := m.trigger
	m.trigger = ""
	if !m.focus.SetFocus(trigger) {
		m.opts.Logger.Debug("focus restoration skipped",
			zap.String("widget", m.opts.ID), zap.String("trigger", trigger))
	}
	m.setPhase(PhaseClosed)
}

func (m *Modal) schedule(fn func()) {
	d := m.TransitionDuration()
	if d == 0 {
		fn()
		return
	}
	m.timer = m.opts.Scheduler.AfterFunc(d, fn)
}

func (m *Modal) setPhase(p Phase) {
	from := m.phase
	if from == p {
		return
	}
	m.phase = p
	m.opts.Logger.Debug("modal phase changed",
		zap.String("widget", m.opts.ID),
		zap.Stringer("from", from),
		zap.Stringer("to", p))
	if m.opts.OnPhaseChange != nil {
		m.opts.OnPhaseChange(from, p)
	}
}

func (m *Modal) mount() {
	if m.mounted {
		return
	}
	m.mounted = true
	m.focus.Add(m.focusables...)
}

func (m *Modal) unmount() {
	if !m.mounted {
		return
	}
	m.mounted = false
	m.focus.Remove(m.focusables...)
}

func (m *Modal) stopTimer() {
	clock.Stop(m.timer)
	m.timer = nil
}

func (m *Modal) withCloseButton(ids []string) []string {
	closeID := m.CloseButtonID()
	for _, id := range ids {
		if id == closeID {
			return append([]string(nil), ids...)
		}
	}
	return append([]string{closeID}, ids...)
}
