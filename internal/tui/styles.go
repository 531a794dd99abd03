package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/syncflow/dashboard/internal/logparse"
)

var (
	ColorNavy   = lipgloss.Color("#1B2A49")
	ColorWhite  = lipgloss.Color("#F5F5F5")
	ColorGray   = lipgloss.Color("8")
	ColorBlue   = lipgloss.Color("39")
	ColorViolet = lipgloss.Color("#8B5CF6")
	ColorGreen  = lipgloss.Color("34")
	ColorYellow = lipgloss.Color("220")
	ColorRed    = lipgloss.Color("196")
	ColorTeal   = lipgloss.Color("#82CA9D")
	ColorPurple = lipgloss.Color("#8884D8")
)

var (
	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray)

	activeSectionStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBlue)

	deckTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorViolet)

	helpStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorWhite).
				Background(ColorViolet)

	headerRowStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	labelStyle = lipgloss.NewStyle().Foreground(ColorGray)
)

// severityStyle colours a network-log severity badge. Unknown severities
// get a neutral badge.
func severityStyle(severity string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	switch logparse.NormalizeSeverity(severity) {
	case logparse.SeverityLow:
		return base.Background(ColorGreen).Foreground(ColorWhite)
	case logparse.SeverityMedium:
		return base.Background(ColorYellow).Foreground(lipgloss.Color("0"))
	case logparse.SeverityHigh:
		return base.Background(ColorRed).Foreground(ColorWhite)
	default:
		return base.Background(lipgloss.Color("0")).Foreground(ColorWhite)
	}
}
