package ui

import "github.com/charmbracelet/lipgloss"

// reps' color palette: hot iron with cool slate accents.
var (
	// Primary colors
	Ember    = lipgloss.Color("#FF4E3D")
	Flame    = lipgloss.Color("#FF8C42")
	Steel    = lipgloss.Color("#7D8491")
	Emerald  = lipgloss.Color("#50C878")
	Citrine  = lipgloss.Color("#E4D00A")
	Sky      = lipgloss.Color("#4FA3D1")
	Dim      = lipgloss.Color("#666666")
	Bright   = lipgloss.Color("#FFFFFF")

	// Semantic styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Ember)

	Subtitle = lipgloss.NewStyle().
			Foreground(Flame)

	Success = lipgloss.NewStyle().
		Foreground(Emerald)

	Error = lipgloss.NewStyle().
		Foreground(Ember)

	Warning = lipgloss.NewStyle().
		Foreground(Citrine)

	Info = lipgloss.NewStyle().
		Foreground(Sky)

	Muted = lipgloss.NewStyle().
		Foreground(Dim)

	Accent = lipgloss.NewStyle().
		Foreground(Flame).
		Bold(true)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Flame).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Bright)
)

// Icon constants for a consistent emoji language.
const (
	IconReps    = "🏋️ "
	IconFire    = "🔥"
	IconRest    = "🛌"
	IconDone    = "✅"
	IconMissed  = "🔴"
	IconPlan    = "📋"
	IconTimer   = "⏱ "
	IconWarn    = "⚠️ "
	IconError   = "✗ "
	IconOk      = "✓ "
	IconArrow   = "→"
	IconDot     = "·"
)
