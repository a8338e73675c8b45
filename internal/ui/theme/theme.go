package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
	Highlight = lipgloss.Color("#FACC15") // Yellow
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Strength labels
var (
	Weak     = lipgloss.NewStyle().Foreground(Error).Bold(true)
	Moderate = lipgloss.NewStyle().Foreground(Accent)
	Good     = lipgloss.NewStyle().Foreground(Secondary)
	Strong   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	TooEarly = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
)

// ForStrength returns the style for a strength label name.
func ForStrength(label string) lipgloss.Style {
	switch label {
	case "weak":
		return Weak
	case "moderate":
		return Moderate
	case "good":
		return Good
	case "strong":
		return Strong
	}
	return TooEarly
}

// Phases
var (
	Focus = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Rest  = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Prep  = lipgloss.NewStyle().Foreground(Accent).Bold(true)
)
