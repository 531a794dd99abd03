package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const sidebarWidth = 22

// sidebarHeaderRows is the number of lines above the first page entry.
const sidebarHeaderRows = 2

// renderBranding renders "SyncFlow" with a violet to teal gradient.
func renderBranding() string {
	colors := []string{"#8B5CF6", "#7C6CF3", "#6D7CF0", "#5E8CED", "#4F9CEA", "#40ACE7", "#31BCE4", "#22CCE1"}
	var b strings.Builder
	for i, r := range "SyncFlow" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(colors[i%len(colors)])).Bold(true).Render(string(r)))
	}
	return b.String()
}

func (a *App) buildSidebarLines() []string {
	lines := []string{renderBranding(), ""}
	for n, idx := range a.navPages() {
		p := a.pages[idx]
		label := fmt.Sprintf("  %d %s", n+1, p.Title())
		if idx == a.activeIdx || a.activeParent() == p.ID() {
			label = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true).
				Render(fmt.Sprintf("> %d %s", n+1, p.Title()))
		}
		lines = append(lines, truncate(label, sidebarWidth-4))
	}
	return lines
}

// activeParent returns the sidebar page a hidden page belongs to.
func (a *App) activeParent() string {
	if cp, ok := a.active().(interface{ Parent() string }); ok {
		return cp.Parent()
	}
	return ""
}

// sidebarPageAtRow maps a mouse row to a page index.
func (a *App) sidebarPageAtRow(y int) (int, bool) {
	nav := a.navPages()
	// Bubble Tea mouse row can include border/padding rows depending on renderer.
	for _, offset := range []int{-1, 0, -2} {
		row := y + offset - sidebarHeaderRows
		if row >= 0 && row < len(nav) {
			return nav[row], true
		}
	}
	return 0, false
}

// renderSidebar renders page navigation in the left sidebar.
func (a *App) renderSidebar(height int) string {
	style := lipgloss.NewStyle().
		Width(sidebarWidth-2).
		Height(height).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray).
		Padding(0, 1)

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, a.buildSidebarLines()...))
}

// renderStatusLine renders the page title, a transient status message and
// key hints at the bottom of the screen.
func (a *App) renderStatusLine(width int) string {
	base := lipgloss.NewStyle().Background(ColorNavy).Foreground(ColorWhite)

	left := ""
	if p := a.active(); p != nil {
		left = " " + p.Title()
	}
	if a.status != "" && a.now().Sub(a.statusAt) < statusTTL {
		left += " | " + a.status
	}

	right := "[/] pages  1-9 jump  q quit "
	if hp, ok := a.active().(interface{ HelpText() string }); ok {
		right = hp.HelpText() + "  " + right
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		right = ""
		gap = max(0, width-lipgloss.Width(left))
	}
	return base.Width(width).Render(truncate(left+strings.Repeat(" ", gap)+right, width))
}
