package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"aishowcase/internal/a11y"
	"aishowcase/internal/carousel"
	"aishowcase/internal/clock"
	"aishowcase/internal/config"
	"aishowcase/internal/content"
	"aishowcase/internal/focus"
	"aishowcase/internal/input"
	"aishowcase/internal/modal"
	"aishowcase/internal/motion"
	"aishowcase/internal/tabs"
	"aishowcase/internal/trace"
)

// Focus ids of page elements that are not owned by a widget.
const (
	ExploreButtonID = "explore"

	heroID  = "hero"
	plansID = "plans"

	planViewportHeight = 4
	announcementLimit  = 20
)

// dispatcher is implemented by schedulers whose timers fire through
// clock.FireMsg, i.e. *clock.Loop.
type dispatcher interface {
	Dispatch(clock.FireMsg) bool
}

// Options configures NewAppModel.
type Options struct {
	Content *content.Showcase
	Config  config.Config
	// Scheduler drives autoplay and dialog transitions. Nil disables both.
	Scheduler clock.Scheduler
	// Motion is the reduced-motion setting shared by every widget. Nil
	// creates one seeded from Config.Motion.Reduced.
	Motion   *motion.Setting
	Logger   *zap.Logger
	Recorder *trace.Recorder
}

// AppModel is the root model: three pages, each with its own focus order,
// and tool dialogs drawn as overlays above the Tools page.
type AppModel struct {
	Page     Page
	Width    int
	Height   int
	Keys     *KeybindRegistry
	KeyMap   input.KeyMap
	Overlays OverlayStack

	Hero     *CarouselView
	Plans    *TabsView
	Tools    *ToolsView
	Dialogs  map[string]*modal.Modal // by tool id
	Live     *a11y.LiveRegion
	Motion   *motion.Setting
	Recorder *trace.Recorder

	content   *content.Showcase
	scheduler clock.Scheduler
	logger    *zap.Logger
	focus     map[Page]*focus.Manager

	hovering     bool
	carouselRect Rect
	dialogRect   Rect
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel builds the pages and widgets from content and config.
func NewAppModel(opts Options) (*AppModel, error) {
	if opts.Content == nil {
		return nil, fmt.Errorf("ui: no content")
	}
	politeness, err := opts.Config.Carousel.LivePoliteness()
	if err != nil {
		return nil, fmt.Errorf("ui: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Motion == nil {
		opts.Motion = motion.NewSetting(opts.Config.Motion.Reduced)
	}

	a := &AppModel{
		Page:      PageHome,
		Width:     80,
		Height:    24,
		KeyMap:    input.DefaultKeyMap,
		Dialogs:   make(map[string]*modal.Modal),
		Live:      a11y.NewLiveRegion(announcementLimit),
		Motion:    opts.Motion,
		Recorder:  opts.Recorder,
		content:   opts.Content,
		scheduler: opts.Scheduler,
		logger:    opts.Logger,
		focus:     make(map[Page]*focus.Manager),
	}
	a.Keys = newKeybindings()
	a.Recorder.Start("showcase")

	a.buildHome(opts.Config.Carousel, politeness)
	if err := a.buildPricing(); err != nil {
		return nil, err
	}
	a.buildTools(opts.Config.Modal)
	return a, nil
}

func newKeybindings() *KeybindRegistry {
	reg := NewKeybindRegistry()
	for _, p := range Pages {
		reg.BindWithDesc(fmt.Sprint(int(p)+1), switchPage(p), p.String())
	}
	reg.BindWithDesc("m", func() tea.Msg { return ToggleMotionMsg{} }, "motion")
	reg.BindWithDesc("t", func() tea.Msg { return ToggleTraceMsg{} }, "trace")
	reg.BindWithDesc("q", tea.Quit, "quit")
	reg.Bind("ctrl+c", tea.Quit)
	return reg
}

func switchPage(p Page) tea.Cmd {
	return func() tea.Msg { return SwitchPageMsg{Page: p} }
}

func (a *AppModel) buildHome(cfg config.CarouselConfig, politeness a11y.Politeness) {
	c := carousel.New(a.content.CarouselSlides(), carousel.Options{
		ID:         heroID,
		Label:      a.content.Hero.Label,
		AutoPlay:   cfg.AutoPlay,
		Interval:   cfg.Interval,
		Politeness: politeness,
		Scheduler:  a.scheduler,
		Motion:     a.Motion,
		Announcer:  a.Live,
		Logger:     a.logger,
		OnIndexChange: func(i int) {
			a.Recorder.Interaction(heroID, "slide", trace.IndexAttrs(i))
		},
	})
	a.Hero = NewCarouselView(c)
	a.Recorder.Mount(heroID, "carousel")

	fm := &focus.Manager{}
	fm.Add(c.ID(), ExploreButtonID)
	fm.OnChange = func(from, to string) {
		switch c.ID() {
		case to:
			c.Focus()
		case from:
			c.Blur()
		}
	}
	a.focus[PageHome] = fm
}

func (a *AppModel) buildPricing() error {
	root := tabs.New[*PlanPanel](tabs.Options{
		ID:     plansID,
		Label:  "Pricing plans",
		Logger: a.logger,
		OnValueChange: func(v string) {
			a.Recorder.Interaction(plansID, "select", map[string]string{trace.AttrValue: v})
			if p, ok := a.plan(v); ok {
				a.Live.Announce(p.Label+" plan selected", a11y.PolitenessPolite)
			}
		},
		OnPanelMount: func(v string) {
			a.Recorder.Interaction(plansID, "panel mount", map[string]string{trace.AttrValue: v})
		},
	})
	a.Recorder.Mount(plansID, "tabs")
	a.Plans = NewTabsView(root)

	for _, p := range a.content.Plans {
		if err := root.Register(tabs.Trigger{Value: p.Value, Label: p.Label}); err != nil {
			return fmt.Errorf("ui: pricing: %w", err)
		}
	}
	for _, p := range a.content.Plans {
		p := p
		err := root.AddPanel(tabs.Panel[*PlanPanel]{
			Value: p.Value,
			Lazy:  p.Lazy,
			Build: func() *PlanPanel { return NewPlanPanel(p, a.Plans.Width-6, planViewportHeight) },
		})
		if err != nil {
			return fmt.Errorf("ui: pricing: %w", err)
		}
	}

	v := a.Plans
	fm := &focus.Manager{}
	fm.Add(v.ListID(), v.PanelID())
	fm.OnChange = func(from, to string) {
		switch from {
		case v.ListID():
			root.Blur()
		case v.PanelID():
			v.PanelFocused = false
		}
		switch to {
		case v.ListID():
			root.Focus()
		case v.PanelID():
			v.PanelFocused = true
		}
	}
	a.focus[PagePricing] = fm
	return nil
}

func (a *AppModel) buildTools(cfg config.ModalConfig) {
	fm := &focus.Manager{}
	a.focus[PageTools] = fm
	a.Tools = NewToolsView(a.content.Tools, fm)

	for _, t := range a.content.Tools {
		t := t
		var m *modal.Modal
		id := "dialog-" + t.ID
		m = modal.New(modal.Options{
			ID:         id,
			Title:      t.Name,
			Duration:   cfg.Transition,
			Scheduler:  a.scheduler,
			Motion:     a.Motion,
			Focus:      fm,
			Focusables: []string{id + "-try", id + "-close"},
			Logger:     a.logger,
			OnPhaseChange: func(_, to modal.Phase) {
				a.dialogPhaseChanged(m, t, to)
			},
		})
		a.Dialogs[t.ID] = m
	}
}

func (a *AppModel) dialogPhaseChanged(m *modal.Modal, t content.Tool, to modal.Phase) {
	switch to {
	case modal.PhaseOpening:
		v := NewDialogView(m, t)
		v.Update(tea.WindowSizeMsg{Width: a.Width, Height: a.Height})
		a.Overlays.Push(Overlay{ID: m.ID(), View: v})
		a.Recorder.Mount(m.ID(), "dialog")
		a.Recorder.TransitionStart(m.ID(), to.String())
	case modal.PhaseOpen:
		a.Recorder.TransitionEnd(m.ID(), to.String())
	case modal.PhaseClosing:
		a.Recorder.TransitionStart(m.ID(), to.String())
	case modal.PhaseClosed:
		a.Overlays.Remove(m.ID())
		a.Recorder.TransitionEnd(m.ID(), to.String())
		a.Recorder.Unmount(m.ID())
	}
}

// PageFocus returns the focus manager of the current page.
func (a *AppModel) PageFocus() *focus.Manager {
	return a.focus[a.Page]
}

// ActiveDialog returns the topmost visible dialog, or nil.
func (a *AppModel) ActiveDialog() *modal.Modal {
	top, ok := a.Overlays.Peek()
	if !ok {
		return nil
	}
	if v, ok := top.View.(*DialogView); ok && v.Modal.Visible() {
		return v.Modal
	}
	return nil
}

// SetPage switches pages. Focus and hover on the page being left are released.
func (a *AppModel) SetPage(p Page) {
	if p == a.Page {
		return
	}
	a.PageFocus().Blur()
	if a.hovering {
		a.hovering = false
		a.Hero.Carousel.PointerLeave()
	}
	a.Page = p
	a.logger.Debug("page changed", zap.Stringer("page", p))
}

// Close stops timers, disposes dialogs and ends the trace session.
func (a *AppModel) Close() {
	a.Hero.Carousel.Close()
	for _, m := range a.Dialogs {
		m.Dispose()
	}
	a.Recorder.End()
}

func (a *AppModel) plan(value string) (content.Plan, bool) {
	for _, p := range a.content.Plans {
		if p.Value == value {
			return p, true
		}
	}
	return content.Plan{}, false
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (a *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: a}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clock.FireMsg:
		if d, ok := a.scheduler.(dispatcher); ok {
			d.Dispatch(msg)
		}
		return a, nil
	case tea.WindowSizeMsg:
		return a.handleResize(msg)
	case SwitchPageMsg:
		a.SetPage(msg.Page)
		return a, nil
	case ToggleTraceMsg:
		a.toggleTrace()
		return a, nil
	case ToggleMotionMsg:
		a.Motion.Toggle()
		a.announceMotion()
		return a, nil
	case ReducedMotionMsg:
		if a.Motion.ReducedMotion() != msg.Reduced {
			a.Motion.Set(msg.Reduced)
			a.announceMotion()
		}
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(msg)
	case tea.MouseMsg:
		return a.handleMouse(msg)
	}
	return a, nil
}

// toggleTrace shows the trace panel, or hides it when it is on top. It never
// opens over a dialog.
func (a *AppModel) toggleTrace() {
	if top, ok := a.Overlays.Peek(); ok {
		if top.ID == TraceOverlayID {
			a.Overlays.Pop()
		}
		return
	}
	v := NewTraceView(a.Recorder)
	v.Update(tea.WindowSizeMsg{Width: a.Width, Height: a.Height})
	a.Overlays.Push(Overlay{ID: TraceOverlayID, View: v})
}

func (a *AppModel) announceMotion() {
	state := "off"
	if a.Motion.ReducedMotion() {
		state = "on"
	}
	a.Live.Announce("Reduced motion "+state, a11y.PolitenessPolite)
}
