// Package textutil provides unicode-aware text helpers for terminal rendering.
package textutil

import "github.com/mattn/go-runewidth"

// Ellipsis marks truncated text.
const Ellipsis = "…"

// VisualWidth returns the number of terminal columns s occupies. s must not
// contain escape sequences.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most maxWidth columns, ending in an ellipsis when
// anything was cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}
