// Package tabs implements a headless tab set: one selected value owned either
// by the caller (controlled) or by the root itself, roving keyboard focus over
// the triggers, and panels that can be built lazily and then stay mounted.
package tabs

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aishowcase/internal/a11y"
	"aishowcase/internal/input"
)

// ErrDuplicateValue is returned when a trigger or panel value is already registered.
var ErrDuplicateValue = errors.New("tabs: duplicate value")

// Activation decides when keyboard focus movement commits a selection.
type Activation int

const (
	// ActivationAutomatic selects a trigger as soon as it receives focus.
	ActivationAutomatic Activation = iota
	// ActivationManual moves focus only; Enter or Space commits.
	ActivationManual
)

func (a Activation) String() string {
	if a == ActivationManual {
		return "manual"
	}
	return "automatic"
}

// Trigger is one tab button. Value is unique within a Root.
type Trigger struct {
	Value string
	Label string
}

// Panel describes the content shown for Value. Build constructs the content;
// with Lazy set it runs on the first selection instead of at registration.
type Panel[C any] struct {
	Value string
	Lazy  bool
	Build func() C
}

// Options configures a Root.
type Options struct {
	// ID prefixes element ids. Defaults to "tabs-<uuid>".
	ID    string
	Label string

	// DefaultValue seeds an uncontrolled root. Empty selects the first
	// registered trigger.
	DefaultValue string

	// Controlled makes Value the only source of the selection. Change
	// requests go to OnValueChange and are applied when the caller calls SetValue.
	Controlled    bool
	Value         string
	OnValueChange func(value string)

	Activation Activation

	// OnPanelMount fires once per panel, when its content is built.
	OnPanelMount func(value string)
	Logger       *zap.Logger
}

type mountedPanel[C any] struct {
	spec    Panel[C]
	content C
	mounted bool
}

// Root is a tab set whose panels hold content of type C. Not safe for
// concurrent use.
type Root[C any] struct {
	opts     Options
	triggers []Trigger
	panels   map[string]*mountedPanel[C]

	internal string
	external string

	focused     string
	focusWithin bool
}

// New creates an empty tab set.
func New[C any](opts Options) *Root[C] {
	if opts.ID == "" {
		opts.ID = "tabs-" + uuid.NewString()[:8]
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Root[C]{
		opts:     opts,
		panels:   make(map[string]*mountedPanel[C]),
		internal: opts.DefaultValue,
		external: opts.Value,
	}
}

// resolve picks the selection source: the caller's value when controlled,
// the root's own state otherwise.
func resolve(controlled bool, external, internal string) string {
	if controlled {
		return external
	}
	return internal
}

// ID returns the root's id prefix.
func (r *Root[C]) ID() string { return r.opts.ID }

// Label returns the tab list's accessible name.
func (r *Root[C]) Label() string { return r.opts.Label }

// Controlled reports whether the caller owns the selection.
func (r *Root[C]) Controlled() bool { return r.opts.Controlled }

// Activation returns the activation policy.
func (r *Root[C]) Activation() Activation { return r.opts.Activation }

// Value returns the resolved selection, whether or not a trigger matches it.
func (r *Root[C]) Value() string {
	return resolve(r.opts.Controlled, r.external, r.internal)
}

// Selected returns the selected trigger value, or "" when the value matches
// no registered trigger.
func (r *Root[C]) Selected() string {
	v := r.Value()
	if r.indexOf(v) < 0 {
		return ""
	}
	return v
}

// IsSelected reports whether value is the selected trigger.
func (r *Root[C]) IsSelected(value string) bool {
	return value != "" && r.Selected() == value
}

// Triggers returns the registered triggers in registration order.
func (r *Root[C]) Triggers() []Trigger { return r.triggers }

// Focused returns the trigger holding the roving focus, or "".
func (r *Root[C]) Focused() string {
	if !r.focusWithin {
		return ""
	}
	return r.focused
}

// Register adds a trigger. Duplicate values are rejected.
func (r *Root[C]) Register(t Trigger) error {
	if t.Value == "" {
		return errors.New("tabs: trigger value is empty")
	}
	if r.indexOf(t.Value) >= 0 {
		return fmt.Errorf("%w: trigger %q", ErrDuplicateValue, t.Value)
	}
	r.triggers = append(r.triggers, t)
	if !r.opts.Controlled && r.internal == "" {
		r.internal = t.Value
	}
	r.sync()
	return nil
}

// Unregister removes a trigger. Its panel stays mounted.
func (r *Root[C]) Unregister(value string) {
	i := r.indexOf(value)
	if i < 0 {
		return
	}
	r.triggers = append(r.triggers[:i:i], r.triggers[i+1:]...)
	if r.focused == value {
		r.focused = ""
	}
}

// AddPanel registers content for a value. Eager panels are built now; lazy
// ones on first selection.
func (r *Root[C]) AddPanel(p Panel[C]) error {
	if _, ok := r.panels[p.Value]; ok {
		return fmt.Errorf("%w: panel %q", ErrDuplicateValue, p.Value)
	}
	mp := &mountedPanel[C]{spec: p}
	r.panels[p.Value] = mp
	if !p.Lazy {
		r.mount(mp)
	}
	r.sync()
	return nil
}

// Select activates a trigger, as a click or keyboard commit would. The
// request is reported through OnValueChange; uncontrolled roots also apply it.
func (r *Root[C]) Select(value string) {
	if r.indexOf(value) < 0 {
		return
	}
	r.focused = value
	if value == r.Value() {
		return
	}
	r.opts.Logger.Debug("tab selection requested",
		zap.String("widget", r.opts.ID),
		zap.String("value", value),
		zap.Bool("controlled", r.opts.Controlled))
	if r.opts.OnValueChange != nil {
		r.opts.OnValueChange(value)
	}
	if !r.opts.Controlled {
		r.internal = value
		r.sync()
	}
}

// SetValue sets the selection directly without reporting it. On a
// controlled root this is how the caller feeds a new value back in.
func (r *Root[C]) SetValue(value string) {
	if r.opts.Controlled {
		r.external = value
	} else {
		r.internal = value
	}
	r.sync()
}

// FocusTrigger moves the roving focus onto a trigger, as a click or Tab
// into the list would. Under automatic activation it also selects.
func (r *Root[C]) FocusTrigger(value string) {
	if r.indexOf(value) < 0 {
		return
	}
	r.focusWithin = true
	r.focused = value
	if r.opts.Activation == ActivationAutomatic {
		r.Select(value)
	}
}

// Focus enters the tab list at its tab stop.
func (r *Root[C]) Focus() {
	if stop := r.tabStop(); stop != "" {
		r.FocusTrigger(stop)
	}
}

// Blur records focus leaving the tab list.
func (r *Root[C]) Blur() {
	r.focusWithin = false
}

// HandleKey applies roving focus: Left/Right wrap through the triggers and
// Home/End jump to the ends. Enter and Space commit under manual activation.
func (r *Root[C]) HandleKey(ev *input.KeyEvent) bool {
	if !r.focusWithin || len(r.triggers) == 0 {
		return false
	}
	n := len(r.triggers)
	cur := r.indexOf(r.focused)
	if cur < 0 {
		cur = r.indexOf(r.tabStop())
	}
	next := -1
	switch ev.Key {
	case input.KeyLeft:
		next = (cur - 1 + n) % n
	case input.KeyRight:
		next = (cur + 1) % n
	case input.KeyHome:
		next = 0
	case input.KeyEnd:
		next = n - 1
	case input.KeyEnter, input.KeySpace:
		ev.PreventDefault()
		r.Select(r.triggers[cur].Value)
		return true
	default:
		return false
	}
	ev.PreventDefault()
	r.FocusTrigger(r.triggers[next].Value)
	return true
}

// TabIndex returns 0 for the trigger that is the list's single tab stop and
// -1 for every other trigger.
func (r *Root[C]) TabIndex(value string) int {
	if value != "" && value == r.tabStop() {
		return 0
	}
	return -1
}

// tabStop is the focused trigger while focus is inside, otherwise the
// selected trigger, otherwise the first.
func (r *Root[C]) tabStop() string {
	if r.focusWithin && r.indexOf(r.focused) >= 0 {
		return r.focused
	}
	if sel := r.Selected(); sel != "" {
		return sel
	}
	if len(r.triggers) > 0 {
		return r.triggers[0].Value
	}
	return ""
}

// Mounted reports whether the panel for value has been built.
func (r *Root[C]) Mounted(value string) bool {
	p, ok := r.panels[value]
	return ok && p.mounted
}

// Panel returns the built content for value. Mounted panels keep their
// content while hidden.
func (r *Root[C]) Panel(value string) (C, bool) {
	p, ok := r.panels[value]
	if !ok || !p.mounted {
		var zero C
		return zero, false
	}
	return p.content, true
}

// Active returns the content of the visible panel.
func (r *Root[C]) Active() (C, bool) {
	return r.Panel(r.Selected())
}

// TriggerID is the element id of a trigger.
func (r *Root[C]) TriggerID(value string) string { return r.opts.ID + "-trigger-" + value }

// PanelID is the element id of a panel.
func (r *Root[C]) PanelID(value string) string { return r.opts.ID + "-panel-" + value }

// Tree returns the accessibility tree. Only the selected panel is present.
func (r *Root[C]) Tree() *a11y.Node {
	root := a11y.NewNode(r.opts.ID, a11y.RoleGroup)
	list := a11y.NewNode(r.opts.ID+"-list", a11y.RoleTabList).
		Set(a11y.AttrOrientation, "horizontal")
	if r.opts.Label != "" {
		list.Set(a11y.AttrLabel, r.opts.Label)
	}
	for _, t := range r.triggers {
		list.Append(a11y.NewNode(r.TriggerID(t.Value), a11y.RoleTab).
			Set(a11y.AttrLabel, t.Label).
			Set(a11y.AttrSelected, a11y.Bool(r.IsSelected(t.Value))).
			Set(a11y.AttrControls, r.PanelID(t.Value)).
			Set(a11y.AttrTabIndex, a11y.TabIndex(r.TabIndex(t.Value))))
	}
	root.Append(list)

	if sel := r.Selected(); sel != "" {
		if _, ok := r.panels[sel]; ok {
			root.Append(a11y.NewNode(r.PanelID(sel), a11y.RoleTabPanel).
				Set(a11y.AttrLabelledBy, r.TriggerID(sel)).
				Set(a11y.AttrTabIndex, a11y.TabIndex(0)))
		}
	}
	return root
}

// sync mounts the selected panel if it has not been built yet.
func (r *Root[C]) sync() {
	sel := r.Selected()
	if sel == "" {
		return
	}
	if p, ok := r.panels[sel]; ok && !p.mounted {
		r.mount(p)
	}
}

func (r *Root[C]) mount(p *mountedPanel[C]) {
	if p.spec.Build != nil {
		p.content = p.spec.Build()
	}
	p.mounted = true
	r.opts.Logger.Debug("tab panel mounted",
		zap.String("widget", r.opts.ID),
		zap.String("value", p.spec.Value),
		zap.Bool("lazy", p.spec.Lazy))
	if r.opts.OnPanelMount != nil {
		r.opts.OnPanelMount(p.spec.Value)
	}
}

func (r *Root[C]) indexOf(value string) int {
	if value == "" {
		return -1
	}
	for i, t := range r.triggers {
		if t.Value == value {
			return i
		}
	}
	return -1
}
