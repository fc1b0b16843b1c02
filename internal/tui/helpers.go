package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// truncate shortens a string to max runes with ellipsis
func truncate(s string, max int) string {
	r := []rune(s)
	if max <= 3 || len(r) <= max {
		if max > 0 && len(r) > max {
			return string(r[:max])
		}
		return s
	}
	return string(r[:max-3]) + "..."
}

// bar draws a width-wide meter filled to percent
func bar(percent, width int, color lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	filled := percent * width / 100
	filled = min(max(filled, 0), width)
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("░", width-filled))
}
