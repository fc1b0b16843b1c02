package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/taskpad/internal/model"
	"github.com/existflow/taskpad/internal/reconcile"
)

// Color palette
var (
	// Priority colors
	PriorityHigh   = lipgloss.Color("#FF6B6B") // Red
	PriorityMedium = lipgloss.Color("#FFB347") // Orange
	PriorityLow    = lipgloss.Color("#4ECDC4") // Blue

	// Status colors
	Completed = lipgloss.Color("#95E1A3") // Green
	Danger    = lipgloss.Color("#FF6B6B")
	Warning   = lipgloss.Color("#FFE66D")

	// UI colors
	Primary   = lipgloss.Color("#4ECDC4")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
	Highlight = lipgloss.Color("#FFE66D")
)

// Styles
var (
	// Header
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	// Board column
	ColumnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	ColumnFocusedStyle = ColumnStyle.
				BorderForeground(Primary)

	ColumnDropTargetStyle = ColumnStyle.
				BorderForeground(Highlight)

	// Task card
	CardStyle = lipgloss.NewStyle()

	CardSelectedStyle = lipgloss.NewStyle().
				Background(Surface).
				Bold(true)

	CardGrabbedStyle = lipgloss.NewStyle().
				Foreground(Highlight).
				Bold(true)

	CardDoneStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true)

	OverdueStyle  = lipgloss.NewStyle().Foreground(Danger)
	DueTodayStyle = lipgloss.NewStyle().Foreground(Warning)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	AlertStyle = lipgloss.NewStyle().Foreground(Danger).Bold(true)

	// Modal dialogs
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// PriorityColor returns the accent color of p
func PriorityColor(p model.Priority) lipgloss.Color {
	switch p {
	case model.PriorityHigh:
		return PriorityHigh
	case model.PriorityMedium:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// ColumnTitleStyle returns the title style of a board column
func ColumnTitleStyle(c reconcile.Column) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	if c == reconcile.ColumnCompleted {
		return style.Foreground(Completed)
	}
	return style.Foreground(PriorityColor(model.Priority(c)))
}
