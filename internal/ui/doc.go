// Package ui is the terminal host for the showcase widgets.
//
// Core pieces:
//   - View: a page region or dialog with its own model, update, view (Elm-style)
//   - CarouselView, TabsView, ToolsView: render the headless widgets
//   - DialogView + OverlayStack: modal dialogs composited over the page
//   - KeybindRegistry: page-scoped single-key commands and the help bar
//   - AppModel: routes input through the focus manager and drives timers
//     from the clock.Loop on the UI goroutine
package ui
