package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/syncflow/dashboard/internal/model"
	"github.com/syncflow/dashboard/internal/poll"
)

const (
	focusManagers = iota
	focusReports
)

// ManagementPage lists managers and the reports of the selected one.
type ManagementPage struct {
	deps     Deps
	managers *Binding[model.Manager]
	mgrCur   listCursor
	repCur   listCursor
	focus    int
}

// NewManagementPage creates the management page. It starts from the bundled
// sample and replaces it once the server answers.
func NewManagementPage(deps Deps) *ManagementPage {
	src := newSource(
		"managers", "Failed to fetch managers",
		deps.Settings.InventoryInterval, 0,
		deps.API.ManagersFetch(),
	)
	src.Seed(model.SampleManagers)
	return &ManagementPage{
		deps:     deps,
		managers: NewBinding(src, func(m model.Manager) string { return m.Name }, deps.Notifier),
	}
}

func (p *ManagementPage) ID() string       { return PageManagement }
func (p *ManagementPage) Title() string    { return "Management" }
func (p *ManagementPage) Loading() bool    { return p.managers.Loading() }
func (p *ManagementPage) HelpText() string { return "tab switch list" }

func (p *ManagementPage) Init() tea.Cmd {
	p.managers.Start(p.deps.ctx())
	return nil
}

func (p *ManagementPage) Leave() { p.managers.Stop() }

// Selected returns the highlighted manager.
func (p *ManagementPage) Selected() (model.Manager, bool) {
	items := p.managers.Items()
	if p.mgrCur.sel >= len(items) {
		return model.Manager{}, false
	}
	return items[p.mgrCur.sel], true
}

func (p *ManagementPage) reports() []model.Report {
	m, ok := p.Selected()
	if !ok {
		return nil
	}
	return m.Employees
}

func (p *ManagementPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case poll.Snapshot[model.Manager]:
		if p.managers.Apply(msg) {
			p.mgrCur.clamp(len(p.managers.Items()))
			p.repCur.clamp(len(p.reports()))
		}
	case tea.KeyMsg:
		cur, n := &p.mgrCur, len(p.managers.Items())
		if p.focus == focusReports {
			cur, n = &p.repCur, len(p.reports())
		}
		switch {
		case key.Matches(msg, keys.NextSection):
			p.focus = (p.focus + 1) % 2
		case key.Matches(msg, keys.Up):
			cur.move(-1, n)
		case key.Matches(msg, keys.Down):
			cur.move(1, n)
		case key.Matches(msg, keys.Home):
			cur.home()
		case key.Matches(msg, keys.End):
			cur.end(n)
		case key.Matches(msg, keys.Refresh):
			p.managers.Source().Refresh()
		}
		if p.focus == focusManagers {
			p.repCur = listCursor{}
		}
	}
	return nil, nil
}

func (p *ManagementPage) View(width, height int) string {
	leftWidth := max(20, width/3)
	rightWidth := max(20, width-leftWidth)

	managers := p.managers.Items()
	names := make([]string, 0, len(managers))
	for _, m := range managers {
		names = append(names, fmt.Sprintf("%s (%d)", m.Name, len(m.Employees)))
	}
	ctx := p.managers.Context(leftWidth, height)
	left := renderDeck(
		fmt.Sprintf("Managers (%d)", len(managers)), deckStatus(ctx),
		deckBody(ctx, names, &p.mgrCur, leftWidth-2, max(1, height-3), p.focus == focusManagers, "No managers found"),
		leftWidth, height, p.focus == focusManagers,
	)

	reports := p.reports()
	rows := make([]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, fmt.Sprintf("%-20s %-28s %s", truncate(r.Name, 20), truncate(r.Task, 28), r.Domain))
	}
	title := "Reports"
	if m, ok := p.Selected(); ok {
		title = fmt.Sprintf("Reports of %s (%d)", m.Name, len(reports))
	}
	header := headerRowStyle.Render(padRight(fmt.Sprintf("%-20s %-28s %s", "Name", "Task", "Domain"), rightWidth-2))
	var body string
	if len(rows) == 0 {
		body = helpStyle.Render("No reports")
	} else {
		body = p.repCur.renderRows(rows, rightWidth-2, max(1, height-4), p.focus == focusReports)
	}
	right := renderDeck(title, "", lipgloss.JoinVertical(lipgloss.Left, header, body),
		rightWidth, height, p.focus == focusReports)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}
