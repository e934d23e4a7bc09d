package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/tempo/internal/model"
)

// Color palette
var (
	// Status column colors
	ColorOpen       = lipgloss.Color("#4ECDC4") // Teal
	ColorInProgress = lipgloss.Color("#FFE66D") // Yellow
	ColorInReview   = lipgloss.Color("#FFB347") // Orange
	ColorClosed     = lipgloss.Color("#95E1A3") // Green

	// Priority colors
	PriorityUrgent = lipgloss.Color("#FF6B6B") // P1 - Red
	PriorityHigh   = lipgloss.Color("#FFB347") // P2 - Orange
	PriorityMedium = lipgloss.Color("#FFE66D") // P3 - Yellow
	PriorityLow    = lipgloss.Color("#4ECDC4") // P4 - Blue

	// UI colors
	Primary   = lipgloss.Color("#4ECDC4")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
	Warning   = lipgloss.Color("#FF6B6B")
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
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	ColumnFocusedStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(Primary).
				Padding(0, 1)

	// Task item
	TaskItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TaskItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	// Grid cells
	CellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	CellSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	TotalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	// Priority badges
	PriorityP1Style = lipgloss.NewStyle().Foreground(PriorityUrgent).Bold(true)
	PriorityP2Style = lipgloss.NewStyle().Foreground(PriorityHigh).Bold(true)
	PriorityP3Style = lipgloss.NewStyle().Foreground(PriorityMedium)
	PriorityP4Style = lipgloss.NewStyle().Foreground(PriorityLow)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	// Input modal
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning)
)

// StatusColor returns the accent color for a board column
func StatusColor(s model.Status) lipgloss.Color {
	switch s {
	case model.StatusOpen:
		return ColorOpen
	case model.StatusInProgress:
		return ColorInProgress
	case model.StatusInReview:
		return ColorInReview
	case model.StatusClosed:
		return ColorClosed
	default:
		return TextMuted
	}
}

// GetPriorityStyle returns the style for a given priority
func GetPriorityStyle(priority int) lipgloss.Style {
	switch priority {
	case 1:
		return PriorityP1Style
	case 2:
		return PriorityP2Style
	case 3:
		return PriorityP3Style
	default:
		return PriorityP4Style
	}
}

// FormatPriority returns a formatted priority badge
func FormatPriority(priority int) string {
	style := GetPriorityStyle(priority)
	switch priority {
	case 1:
		return style.Render("P1")
	case 2:
		return style.Render("P2")
	case 3:
		return style.Render("P3")
	default:
		return style.Render("P4")
	}
}
