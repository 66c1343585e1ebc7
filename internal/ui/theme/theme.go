package theme

import (
	"charm.land/lipgloss/v2"
)

// Base palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Course states, shared by map rows and the credit bar
var (
	Locked     = lipgloss.Color("#64748B") // Muted slate
	Available  = Text
	InProgress = Accent
	Completed  = lipgloss.Color("#22C55E") // Green
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	// Section headings in the course detail view.
	Section = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)
)

// Selection and feedback
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Warning = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Credit bar cells
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Completed)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
