package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: dark slate background with the Rheo teal
var (
	Primary   = lipgloss.Color("#14B8A6") // Teal
	Secondary = lipgloss.Color("#8B5CF6") // Purple
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#10B981") // Emerald
	Error     = lipgloss.Color("#EF4444") // Red
	Heart     = lipgloss.Color("#F472B6") // Pink
	Streak    = lipgloss.Color("#FB923C") // Orange
	Gold      = lipgloss.Color("#FACC15") // Yellow
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
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

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	// Label is the small all-caps caption above an exercise area.
	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	// Code frames source listings and terminal transcripts.
	Code = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
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

	Muted = lipgloss.NewStyle().
		Foreground(Border)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Primary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Foreground(TextDim).
			Padding(0, 2)

	HeartFull = lipgloss.NewStyle().
			Foreground(Heart)

	StarLit = lipgloss.NewStyle().
		Foreground(Gold)

	StreakFlame = lipgloss.NewStyle().
			Foreground(Streak).
			Bold(true)
)
