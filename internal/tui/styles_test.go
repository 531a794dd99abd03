package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestSeverityStyle_OnlyExactLevelsAreColoured(t *testing.T) {
	t.Parallel()

	neutral := lipgloss.Color("0")
	tests := []struct {
		severity string
		want     lipgloss.TerminalColor
	}{
		{"LOW", ColorGreen},
		{"MEDIUM", ColorYellow},
		{"HIGH", ColorRed},
		{"low", neutral},
		{"WARN", neutral},
		{"CRITICAL", neutral},
		{"", neutral},
	}
	for _, tt := range tests {
		if got := severityStyle(tt.severity).GetBackground(); got != tt.want {
			t.Errorf("severityStyle(%q) background = %v, want %v", tt.severity, got, tt.want)
		}
	}
}
