// Package theme holds the lipgloss styles used for terminal reports.
package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonlens/internal/schedule"
	"github.com/abhisek/lessonlens/internal/tension"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Amber
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// Severity badges
var (
	Critical = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Warn = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)

	Info = lipgloss.NewStyle().
		Foreground(Secondary)
)

// Readiness tags
var (
	Ready = lipgloss.NewStyle().
		Foreground(Success)

	Partial = lipgloss.NewStyle().
		Foreground(Accent)

	Blocked = lipgloss.NewStyle().
		Foreground(Error)
)

// Severity returns the badge style for s.
func Severity(s tension.Severity) lipgloss.Style {
	switch s {
	case tension.SeverityCritical:
		return Critical
	case tension.SeverityWarning:
		return Warn
	default:
		return Info
	}
}

// Readiness returns the tag style for r.
func Readiness(r schedule.Readiness) lipgloss.Style {
	switch r {
	case schedule.ReadinessReady:
		return Ready
	case schedule.ReadinessPartial:
		return Partial
	default:
		return Blocked
	}
}
