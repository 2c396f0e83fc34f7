// Package carousel implements a headless slide carousel: circular
// navigation, autoplay with pause, keyboard control, reduced-motion handling
// and live-region announcements.
package carousel

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"aishowcase/internal/a11y"
	"aishowcase/internal/clock"
	"aishowcase/internal/input"
	"aishowcase/internal/motion"
)

// ErrInvalidIndex is returned by GoTo for an index outside [0, len).
var ErrInvalidIndex = errors.New("carousel: invalid index")

const (
	// DefaultInterval is the autoplay period when Options.Interval is zero.
	DefaultInterval = 5 * time.Second
	// DefaultTransition is the slide fade duration without reduced motion.
	DefaultTransition = 500 * time.Millisecond
)

// ImageRef points at a slide's media.
type ImageRef struct {
	Src    string
	Alt    string
	Width  int
	Height int
}

// Slide is one carousel item. Identity is ID.
type Slide struct {
	ID          string
	Media       ImageRef
	Title       string
	Description string
}

// Options configures a Carousel. Zero values pick defaults.
type Options struct {
	AutoPlay   bool
	Interval   time.Duration
	Transition time.Duration
	// Label is the region's accessible name.
	Label      string
	ID         string
	Politeness a11y.Politeness

	// Scheduler drives autoplay. Without one the carousel never auto-advances.
	Scheduler clock.Scheduler
	Motion    motion.Source
	Announcer a11y.Announcer
	Logger    *zap.Logger

	// OnIndexChange fires after every index change, after the announcement.
	OnIndexChange func(index int)
}

// State is a snapshot of the carousel's transient UI state.
type State struct {
	CurrentIndex  int
	IsPaused      bool
	ReducedMotion bool
}

// Dot is one secondary index-selection affordance.
type Dot struct {
	Index  int
	Active bool
	Label  string
}

// Carousel cycles through slides. It owns only its index and pause state;
// slides belong to the caller. Not safe for concurrent use: drive it from the
// UI loop that owns its Scheduler.
type Carousel struct {
	slides []Slide
	opts   Options

	index       int
	hovered     bool
	focusWithin bool
	reduced     bool

	timer       clock.Timer
	unsubscribe func()
	closed      bool
}

// New creates a carousel and starts its autoplay timer when applicable.
// Call Close on teardown.
func New(slides []Slide, opts Options) *Carousel {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Transition <= 0 {
		opts.Transition = DefaultTransition
	}
	if opts.Label == "" {
		opts.Label = "Carousel"
	}
	if opts.ID == "" {
		opts.ID = "carousel"
	}
	if opts.Motion == nil {
		opts.Motion = motion.Static(false)
	}
	if opts.Announcer == nil {
		opts.Announcer = a11y.Discard
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	c := &Carousel{
		slides: slides,
		opts:   opts,
	}
	c.reduced = opts.Motion.ReducedMotion()
	c.unsubscribe = opts.Motion.Subscribe(c.setReducedMotion)
	c.reschedule()
	return c
}

// ID returns the region id.
func (c *Carousel) ID() string { return c.opts.ID }

// Label returns the region's accessible name.
func (c *Carousel) Label() string { return c.opts.Label }

// Index returns the current slide index (0 when empty).
func (c *Carousel) Index() int { return c.index }

// Len returns the number of slides.
func (c *Carousel) Len() int { return len(c.slides) }

// Slides returns the caller-owned slide list.
func (c *Carousel) Slides() []Slide { return c.slides }

// Current returns the visible slide.
func (c *Carousel) Current() (Slide, bool) {
	if len(c.slides) == 0 {
		return Slide{}, false
	}
	return c.slides[c.index], true
}

// Paused reports whether autoplay is paused by hover or focus.
func (c *Carousel) Paused() bool { return c.hovered || c.focusWithin }

// ReducedMotion reports the last observed reduced-motion preference.
func (c *Carousel) ReducedMotion() bool { return c.reduced }

// Focused reports whether keyboard focus is within the region.
func (c *Carousel) Focused() bool { return c.focusWithin }

// State returns a snapshot of the transient state.
func (c *Carousel) State() State {
	return State{CurrentIndex: c.index, IsPaused: c.Paused(), ReducedMotion: c.reduced}
}

// Autoplaying reports whether an autoplay timer is armed.
func (c *Carousel) Autoplaying() bool { return c.timer != nil }

// TransitionDuration is the visual slide-change duration; zero under reduced motion.
func (c *Carousel) TransitionDuration() time.Duration {
	if c.reduced {
		return 0
	}
	return c.opts.Transition
}

// Next advances one slide, wrapping past the last.
func (c *Carousel) Next() {
	if len(c.slides) == 0 {
		return
	}
	c.setIndex((c.index + 1) % len(c.slides))
}

// Previous goes back one slide, wrapping before the first.
func (c *Carousel) Previous() {
	if len(c.slides) == 0 {
		return
	}
	c.setIndex((c.index - 1 + len(c.slides)) % len(c.slides))
}

// GoTo jumps to slide i. Out-of-range indexes return ErrInvalidIndex and
// leave the index unchanged. On an empty carousel GoTo is a no-op.
func (c *Carousel) GoTo(i int) error {
	if len(c.slides) == 0 {
		return nil
	}
	if i < 0 || i >= len(c.slides) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrInvalidIndex, i, len(c.slides))
	}
	c.setIndex(i)
	return nil
}

// Dots returns one entry per slide, marking the current one.
func (c *Carousel) Dots() []Dot {
	dots := make([]Dot, len(c.slides))
	for i := range c.slides {
		dots[i] = Dot{
			Index:  i,
			Active: i == c.index,
			Label:  fmt.Sprintf("Go to slide %d", i+1),
		}
	}
	return dots
}

// ActivateDot selects a dot; it is the same path as GoTo.
func (c *Carousel) ActivateDot(i int) error {
	return c.GoTo(i)
}

// HandleKey applies the region's keyboard contract. It only reacts while
// focus is within the region. Handled keys are marked with PreventDefault.
func (c *Carousel) HandleKey(ev *input.KeyEvent) bool {
	if !c.focusWithin || len(c.slides) == 0 {
		return false
	}
	switch ev.Key {
	case input.KeyLeft:
		c.Previous()
	case input.KeyRight:
		c.Next()
	case input.KeyHome:
		c.setIndex(0)
	case input.KeyEnd:
		c.setIndex(len(c.slides) - 1)
	default:
		return false
	}
	ev.PreventDefault()
	return true
}

// HandlePointer applies hover pause rules. Clicks are ignored here; dots and
// arrows route their clicks through ActivateDot/Next/Previous.
func (c *Carousel) HandlePointer(p input.Pointer) {
	switch p {
	case input.PointerEnter:
		c.PointerEnter()
	case input.PointerLeave:
		c.PointerLeave()
	}
}

// PointerEnter pauses autoplay while the pointer is over the region.
func (c *Carousel) PointerEnter() {
	if c.hovered {
		return
	}
	c.hovered = true
	c.pauseChanged()
}

// PointerLeave ends the hover pause.
func (c *Carousel) PointerLeave() {
	if !c.hovered {
		return
	}
	c.hovered = false
	c.pauseChanged()
}

// Focus records keyboard focus entering the region; autoplay pauses.
func (c *Carousel) Focus() {
	if c.focusWithin {
		return
	}
	c.focusWithin = true
	c.pauseChanged()
}

// Blur records focus leaving the region.
func (c *Carousel) Blur() {
	if !c.focusWithin {
		return
	}
	c.focusWithin = false
	c.pauseChanged()
}

// SetAutoPlay toggles autoplay.
func (c *Carousel) SetAutoPlay(on bool) {
	if c.opts.AutoPlay == on {
		return
	}
	c.opts.AutoPlay = on
	c.reschedule()
}

// SetInterval changes the autoplay period. Non-positive values are ignored.
func (c *Carousel) SetInterval(d time.Duration) {
	if d <= 0 || d == c.opts.Interval {
		return
	}
	c.opts.Interval = d
	c.reschedule()
}

// SetSlides replaces the slide list. The index resets to 0 if it would fall
// out of range; an announcement follows whenever the visible slide changed.
func (c *Carousel) SetSlides(slides []Slide) {
	prevLen := len(c.slides)
	prev, hadSlide := c.Current()
	c.slides = slides
	switch {
	case len(slides) == 0:
		c.index = 0
	case c.index >= len(slides):
		c.setIndex(0)
	case !hadSlide || slides[c.index].ID != prev.ID:
		c.announce()
	}
	if prevLen != len(slides) {
		c.reschedule()
	}
}

// Close cancels the autoplay timer and releases the motion subscription.
// Further calls are no-ops.
func (c *Carousel) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.stopTimer()
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

func (c *Carousel) setReducedMotion(reduced bool) {
	if c.reduced == reduced {
		return
	}
	c.reduced = reduced
	c.opts.Logger.Debug("reduced motion changed",
		zap.String("widget", c.opts.ID), zap.Bool("reduced", reduced))
	c.reschedule()
}

func (c *Carousel) pauseChanged() {
	c.opts.Logger.Debug("carousel pause changed",
		zap.String("widget", c.opts.ID), zap.Bool("paused", c.Paused()))
	c.reschedule()
}

func (c *Carousel) setIndex(i int) {
	if i == c.index {
		return
	}
	c.index = i
	s := c.slides[i]
	c.opts.Logger.Debug("carousel index changed",
		zap.String("widget", c.opts.ID), zap.Int("index", i), zap.String("slide", s.ID))
	c.announce()
	if c.opts.OnIndexChange != nil {
		c.opts.OnIndexChange(i)
	}
}

func (c *Carousel) announce() {
	c.opts.Announcer.Announce(c.Announcement(), c.opts.Politeness)
}

// Announcement is the live-region text for the current slide.
func (c *Carousel) Announcement() string {
	if len(c.slides) == 0 {
		return ""
	}
	return fmt.Sprintf("slide %d of %d: %s", c.index+1, len(c.slides), c.slides[c.index].Title)
}

func (c *Carousel) shouldAutoplay() bool {
	return !c.closed && c.opts.Scheduler != nil && c.opts.AutoPlay && !c.Paused() && !c.reduced && len(c.slides) > 1
}

// reschedule cancels the running interval and, if autoplay conditions hold,
// starts a fresh one measured from now.
func (c *Carousel) reschedule() {
	c.stopTimer()
	if !c.shouldAutoplay() {
		return
	}
	c.timer = c.opts.Scheduler.AfterFunc(c.opts.Interval, c.tick)
}

func (c *Carousel) tick() {
	c.timer = nil
	if !c.shouldAutoplay() {
		return
	}
	c.Next()
	// Callbacks fired by Next may have rescheduled or closed the carousel.
	if c.timer == nil && c.shouldAutoplay() {
		c.timer = c.opts.Scheduler.AfterFunc(c.opts.Interval, c.tick)
	}
}

func (c *Carousel) stopTimer() {
	clock.Stop(c.timer)
	c.timer = nil
}

// Tree returns the region's accessibility tree. Slides other than the
// current one are aria-hidden; the live region carries the announcement.
// An empty carousel has no tree.
func (c *Carousel) Tree() *a11y.Node {
	if len(c.slides) == 0 {
		return nil
	}
	root := a11y.NewNode(c.opts.ID, a11y.RoleRegion).
		Set(a11y.AttrRoleDescription, "carousel").
		Set(a11y.AttrLabel, c.opts.Label)

	for i, s := range c.slides {
		slide := a11y.NewNode(c.opts.ID+"-slide-"+s.ID, a11y.RoleGroup).
			Set(a11y.AttrRoleDescription, "slide").
			Set(a11y.AttrLabel, fmt.Sprintf("%d of %d", i+1, len(c.slides)))
		if i != c.index {
			slide.Set(a11y.AttrHidden, a11y.Bool(true))
		}
		root.Append(slide)
	}

	for _, d := range c.Dots() {
		dot := a11y.NewNode(fmt.Sprintf("%s-dot-%d", c.opts.ID, d.Index), a11y.RoleButton).
			Set(a11y.AttrLabel, d.Label)
		if d.Active {
			dot.Set(a11y.AttrCurrent, a11y.Bool(true))
		}
		root.Append(dot)
	}

	live := a11y.NewNode(c.opts.ID+"-live", a11y.RoleStatus).
		Set(a11y.AttrLive, c.opts.Politeness.String()).
		Set(a11y.AttrAtomic, a11y.Bool(true)).
		Set(a11y.AttrLabel, c.Announcement())
	return root.Append(live)
}
