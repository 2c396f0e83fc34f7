package ui

// SwitchPageMsg selects a page.
type SwitchPageMsg struct {
	Page Page
}

// ToggleMotionMsg flips the in-app reduced-motion setting.
type ToggleMotionMsg struct{}

// ReducedMotionMsg carries a reduced-motion preference read from outside the
// program, such as the watched preferences file.
type ReducedMotionMsg struct {
	Reduced bool
}

// ToggleTraceMsg shows or hides the session trace panel.
type ToggleTraceMsg struct{}
