package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/syncflow/dashboard/internal/model"
	"github.com/syncflow/dashboard/internal/poll"
	"github.com/syncflow/dashboard/internal/timestamp"
)

// EmployeePage shows one employee and the live intruder network-log stream.
// Turning auto-scroll off also pauses fetching.
type EmployeePage struct {
	deps     Deps
	employee model.Employee
	logs     *Binding[model.NetworkLog]
	cursor   listCursor
}

// NewEmployeePage creates the employee detail page.
func NewEmployeePage(deps Deps) *EmployeePage {
	src := newSource(
		"intruder", "Failed to fetch logs",
		deps.Settings.StreamInterval, deps.Settings.TailWindow,
		deps.API.IntruderLogsFetch(),
	)
	return &EmployeePage{
		deps:   deps,
		logs:   NewBinding[model.NetworkLog](src, nil, deps.Notifier),
		cursor: listCursor{follow: true},
	}
}

func (p *EmployeePage) ID() string     { return PageEmployee }
func (p *EmployeePage) Title() string  { return "Employee" }
func (p *EmployeePage) Hidden() bool   { return true }
func (p *EmployeePage) Parent() string { return PageRoster }

func (p *EmployeePage) SetParams(params any) {
	if e, ok := params.(model.Employee); ok {
		p.employee = e
	}
}

func (p *EmployeePage) Init() tea.Cmd {
	p.cursor = listCursor{follow: true}
	p.logs.SetEnabled(true)
	p.logs.Start(p.deps.ctx())
	return nil
}

func (p *EmployeePage) Leave() { p.logs.Stop() }

func (p *EmployeePage) Loading() bool    { return p.logs.Loading() }
func (p *EmployeePage) HelpText() string { return "a auto-scroll  esc back" }

// AutoScroll reports whether the stream follows new entries.
func (p *EmployeePage) AutoScroll() bool { return p.cursor.follow }

func (p *EmployeePage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case poll.Snapshot[model.NetworkLog]:
		if p.logs.Apply(msg) {
			p.cursor.clamp(len(p.logs.Items()))
		}
	case tea.KeyMsg:
		n := len(p.logs.Items())
		switch {
		case key.Matches(msg, keys.Back):
			return nil, &PageNav{PageID: PageRoster}
		case key.Matches(msg, keys.AutoScroll):
			p.toggleAutoScroll()
		case key.Matches(msg, keys.Up):
			p.setFollow(false)
			p.cursor.move(-1, n)
		case key.Matches(msg, keys.Down):
			p.cursor.move(1, n)
		case key.Matches(msg, keys.Home):
			p.setFollow(false)
			p.cursor.home()
		case key.Matches(msg, keys.End):
			p.cursor.end(n)
		case key.Matches(msg, keys.PageUp):
			p.setFollow(false)
			p.cursor.move(-pageStep, n)
		case key.Matches(msg, keys.PageDown):
			p.cursor.move(pageStep, n)
		}
	}
	return nil, nil
}

func (p *EmployeePage) toggleAutoScroll() {
	p.setFollow(!p.cursor.follow)
}

// setFollow couples auto-scroll with fetching, so reading older entries
// freezes the stream until auto-scroll is turned back on.
func (p *EmployeePage) setFollow(follow bool) {
	if p.cursor.follow == follow {
		return
	}
	p.cursor.follow = follow
	p.logs.SetEnabled(follow)
	if follow {
		p.logs.Source().Refresh()
	}
}

func (p *EmployeePage) View(width, height int) string {
	profile := p.renderProfile(width)
	deckHeight := max(4, height-lipgloss.Height(profile))

	logs := p.logs.Items()
	rows := make([]string, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, formatLogRow(l))
	}

	ctx := p.logs.Context(width, deckHeight)
	scroll := "auto-scroll on"
	if !p.cursor.follow {
		scroll = "auto-scroll off"
	}
	title := fmt.Sprintf("Network activity (%d) | %s", len(logs), scroll)
	body := deckBody(ctx, rows, &p.cursor, width-2, max(1, deckHeight-3), true, "No logs available")

	return lipgloss.JoinVertical(lipgloss.Left,
		profile,
		renderDeck(title, deckStatus(ctx), body, width, deckHeight, true),
	)
}

func (p *EmployeePage) renderProfile(width int) string {
	e := p.employee
	if e.EmployeeID == "" {
		return helpStyle.Render("No employee selected")
	}
	lines := []string{
		deckTitleStyle.Render(e.Name) + "  " + labelStyle.Render(e.Position),
		labelStyle.Render("Email: ") + e.Email + "   " + labelStyle.Render("ID: ") + e.EmployeeID,
	}
	return lipgloss.NewStyle().Width(width).Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// formatLogRow renders a network log as one table row.
func formatLogRow(l model.NetworkLog) string {
	when := l.Time
	if t, ok := timestamp.Parse(l.Time); ok {
		when = t.Format(time.DateTime)
	}
	return fmt.Sprintf("%-19s %s %-8s %-15s -> %-15s %5s/%s",
		truncate(when, 19), severityStyle(l.Severity).Render(padRight(l.Severity, 6)),
		string(l.Type), l.Source, l.Destination, l.Port, l.Protocol)
}
