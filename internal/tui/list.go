package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// listCursor is the selection/scroll state of a vertical list.
type listCursor struct {
	sel    int
	offset int
	follow bool // keep the last row selected as items arrive
}

func (c *listCursor) clamp(n int) {
	if n == 0 {
		c.sel, c.offset = 0, 0
		return
	}
	if c.follow {
		c.sel = n - 1
	}
	c.sel = max(0, min(c.sel, n-1))
	c.offset = max(0, min(c.offset, n-1))
}

func (c *listCursor) move(delta, n int) {
	c.sel += delta
	c.clamp(n)
}

// pageStep is how far PageUp/PageDown move a list selection.
const pageStep = 10

func (c *listCursor) home() { c.sel = 0 }

func (c *listCursor) end(n int) { c.sel = max(0, n-1) }

// window returns the visible [start,end) range for height rows, scrolling
// the offset so the selection stays visible.
func (c *listCursor) window(n, height int) (int, int) {
	if height <= 0 || n == 0 {
		return 0, 0
	}
	c.clamp(n)
	if c.sel < c.offset {
		c.offset = c.sel
	}
	if c.sel >= c.offset+height {
		c.offset = c.sel - height + 1
	}
	if c.offset+height > n {
		c.offset = max(0, n-height)
	}
	return c.offset, min(n, c.offset+height)
}

// renderRows renders rows[start:end] with the selected row highlighted.
func (c *listCursor) renderRows(rows []string, width, height int, active bool) string {
	start, end := c.window(len(rows), height)
	lines := make([]string, 0, height)
	for i := start; i < end; i++ {
		line := truncate(rows[i], width)
		if active && i == c.sel {
			line = selectedRowStyle.Width(width).Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// truncate cuts s to width cells, marking the cut with "~".
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r)) > width-1 {
		r = r[:len(r)-1]
	}
	return string(r) + "~"
}

// padRight pads s with spaces to width cells.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// renderDeck frames content with a title and an optional right-aligned
// status such as an error or "paused".
func renderDeck(title, status, content string, width, height int, active bool) string {
	style := sectionStyle
	if active {
		style = activeSectionStyle
	}
	inner := max(1, width-2)
	header := deckTitleStyle.Render(title)
	if status != "" {
		gap := inner - lipgloss.Width(header) - lipgloss.Width(status)
		if gap > 0 {
			header += strings.Repeat(" ", gap) + status
		} else {
			header += " " + status
		}
	}
	return style.Width(inner).Height(max(1, height-2)).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, content),
	)
}

// deckStatus renders the right side of a deck header from its context.
func deckStatus(ctx ViewContext) string {
	switch {
	case ctx.DeckLastError != "":
		return errorStyle.Render(ctx.DeckLastError)
	case ctx.DeckPaused:
		return helpStyle.Render("paused")
	case ctx.Needle != "":
		return helpStyle.Render("search: " + ctx.Needle)
	}
	return ""
}

// deckBody picks the body of a list deck: rows, a loading spinner or an
// empty placeholder.
func deckBody(ctx ViewContext, rows []string, cur *listCursor, width, height int, active bool, empty string) string {
	switch {
	case len(rows) > 0:
		return cur.renderRows(rows, width, height, active)
	case ctx.DeckLoading:
		return renderLoadingPlaceholder(width, height)
	default:
		return helpStyle.Render(empty)
	}
}
