package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/syncflow/dashboard/internal/model"
	"github.com/syncflow/dashboard/internal/poll"
)

// RosterPage lists employees; enter opens the selected employee.
type RosterPage struct {
	deps   Deps
	roster *Binding[model.Employee]
	cursor listCursor
	search textinput.Model
	typing bool
	width  int
	height int
}

// NewRosterPage creates the employee roster page.
func NewRosterPage(deps Deps) *RosterPage {
	src := newSource(
		"roster", "Failed to fetch logs",
		deps.Settings.StreamInterval, deps.Settings.TailWindow,
		deps.API.RosterFetch(),
	)
	src.Seed(model.SampleEmployees)

	search := textinput.New()
	search.Placeholder = "Search by name..."
	search.CharLimit = 100

	return &RosterPage{
		deps:   deps,
		roster: NewBinding(src, func(e model.Employee) string { return e.Name }, deps.Notifier),
		search: search,
	}
}

func (p *RosterPage) ID() string    { return PageRoster }
func (p *RosterPage) Title() string { return "Employees" }

func (p *RosterPage) Init() tea.Cmd {
	p.roster.Start(p.deps.ctx())
	return nil
}

func (p *RosterPage) Leave() {
	p.roster.Stop()
}

func (p *RosterPage) Loading() bool           { return p.roster.Loading() }
func (p *RosterPage) CapturingInput() bool    { return p.typing }
func (p *RosterPage) HelpText() string        { return "/ search  enter open" }
func (p *RosterPage) Items() []model.Employee { return p.roster.Items() }

func (p *RosterPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
	case poll.Snapshot[model.Employee]:
		p.roster.Apply(msg)
		p.cursor.clamp(len(p.roster.Items()))
	case tea.KeyMsg:
		if p.typing {
			return p.updateSearch(msg), nil
		}
		items := p.roster.Items()
		switch {
		case key.Matches(msg, keys.Search):
			p.typing = true
			return p.search.Focus(), nil
		case key.Matches(msg, keys.Escape):
			p.search.SetValue("")
			p.roster.SetNeedle("")
		case key.Matches(msg, keys.Up):
			p.cursor.move(-1, len(items))
		case key.Matches(msg, keys.Down):
			p.cursor.move(1, len(items))
		case key.Matches(msg, keys.Home):
			p.cursor.home()
		case key.Matches(msg, keys.End):
			p.cursor.end(len(items))
		case key.Matches(msg, keys.PageUp):
			p.cursor.move(-pageStep, len(items))
		case key.Matches(msg, keys.PageDown):
			p.cursor.move(pageStep, len(items))
		case key.Matches(msg, keys.Refresh):
			p.roster.Source().Refresh()
		case key.Matches(msg, keys.Enter):
			if p.cursor.sel < len(items) {
				return nil, &PageNav{PageID: PageEmployee, Params: items[p.cursor.sel]}
			}
		}
	}
	return nil, nil
}

func (p *RosterPage) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		p.typing = false
		p.search.Blur()
		if msg.Type == tea.KeyEsc {
			p.search.SetValue("")
		}
	default:
		var cmd tea.Cmd
		p.search, cmd = p.search.Update(msg)
		p.roster.SetNeedle(p.search.Value())
		p.cursor.clamp(len(p.roster.Items()))
		return cmd
	}
	p.roster.SetNeedle(p.search.Value())
	p.cursor.clamp(len(p.roster.Items()))
	return nil
}

func (p *RosterPage) View(width, height int) string {
	var top string
	deckHeight := height
	if p.typing || p.search.Value() != "" {
		top = p.search.View()
		deckHeight--
	}

	items := p.roster.Items()
	inner := width - 2
	rows := make([]string, 0, len(items))
	for _, e := range items {
		rows = append(rows, fmt.Sprintf("%-20s %-22s %-24s %s",
			truncate(e.Name, 20), truncate(e.Position, 22), truncate(e.Email, 24), e.EmployeeID))
	}

	header := headerRowStyle.Render(padRight(fmt.Sprintf("%-20s %-22s %-24s %s", "Name", "Position", "Email", "ID"), inner))
	ctx := p.roster.Context(width, deckHeight)
	body := deckBody(ctx, rows, &p.cursor, inner, max(1, deckHeight-4), true, "No employees found")
	deck := renderDeck(
		fmt.Sprintf("Employees (%d)", len(items)), deckStatus(ctx),
		lipgloss.JoinVertical(lipgloss.Left, header, body),
		width, deckHeight, true,
	)
	if top == "" {
		return deck
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, deck)
}
