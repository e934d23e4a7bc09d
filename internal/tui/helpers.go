package tui

import "strings"

// truncate shortens a string to max length with ellipsis
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// rule draws a horizontal divider of the given width
func rule(width int) string {
	if width < 0 {
		width = 0
	}
	return strings.Repeat("─", width)
}
