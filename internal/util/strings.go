// Package util provides shared utility functions used across the codebase.
package util

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Truncate shortens a string to max runes, appending "…" if it was cut.
// This is a plain rune truncation that does not account for ANSI escape
// codes or wide characters. For styled terminal output use TruncateANSI.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// TruncateANSI shortens a string to max visual columns, appending "…" if
// it was cut. Escape sequences and wide characters are measured by their
// rendered width, so styled cells stay aligned.
func TruncateANSI(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	// ansi.Truncate includes the tail in the final width calculation
	return ansi.Truncate(s, max, "…")
}

// PadANSI pads a string with trailing spaces to the given visual width,
// measuring escape sequences and wide characters by rendered width.
// Strings already at or past the width are returned unchanged.
func PadANSI(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
