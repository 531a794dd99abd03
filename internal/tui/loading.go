package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 120 * time.Millisecond

// renderLoadingPlaceholder renders an animated loading indicator.
// The frame is selected based on the current time so it animates on re-render.
func renderLoadingPlaceholder(width, height int) string {
	frame := spinnerFrames[time.Now().UnixMilli()/spinnerInterval.Milliseconds()%int64(len(spinnerFrames))]

	loadingStyle := lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)

	text := loadingStyle.Render(frame + " Loading...")

	return lipgloss.Place(width, max(1, height), lipgloss.Center, lipgloss.Center, text)
}

// SpinnerTickMsg triggers a re-render for loading spinners.
type SpinnerTickMsg struct{}

// LoadingPage reports whether any of its decks is still waiting for data.
type LoadingPage interface {
	Loading() bool
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg { return SpinnerTickMsg{} })
}

// startSpinnerIfNeeded schedules a spinner tick while the active page is loading.
func (a *App) startSpinnerIfNeeded() tea.Cmd {
	if a.spinning {
		return nil
	}
	if lp, ok := a.active().(LoadingPage); ok && lp.Loading() {
		a.spinning = true
		return spinnerTick()
	}
	return nil
}

// handleSpinnerTick re-schedules spinner ticks while the active page is loading.
func (a *App) handleSpinnerTick() tea.Cmd {
	a.spinning = false
	return a.startSpinnerIfNeeded()
}
