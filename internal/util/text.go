// Package util provides small text helpers shared by the display code.
package util

import "github.com/charmbracelet/x/ansi"

// Ellipsis marks text that was cut to fit.
const Ellipsis = "…"

// Truncate shortens s to at most width terminal columns, ending it with an
// ellipsis when anything was cut. ANSI escape sequences and wide characters
// are measured correctly.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return Ellipsis
	}
	return ansi.Truncate(s, width, Ellipsis)
}

// TruncateLeft is Truncate for text whose end matters most, such as file
// paths: it drops leading columns and marks the cut at the start.
func TruncateLeft(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(s)
	if w <= width {
		return s
	}
	if width == 1 {
		return Ellipsis
	}
	return ansi.TruncateLeft(s, w-width+1, Ellipsis)
}
