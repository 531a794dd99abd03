package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/syncflow/dashboard/internal/poll"
)

// CheckoutPage lists the monitored IP addresses.
type CheckoutPage struct {
	deps   Deps
	ips    *Binding[string]
	cursor listCursor
	search textinput.Model
	typing bool
}

// NewCheckoutPage creates the IP list page.
func NewCheckoutPage(deps Deps) *CheckoutPage {
	src := newSource(
		"ips", "Failed to fetch IPs",
		deps.Settings.InventoryInterval, 0,
		deps.API.CheckoutIPsFetch(),
	)
	search := textinput.New()
	search.Placeholder = "Search IP..."
	search.CharLimit = 64
	return &CheckoutPage{
		deps:   deps,
		ips:    NewBinding(src, func(ip string) string { return ip }, deps.Notifier),
		search: search,
	}
}

func (p *CheckoutPage) ID() string           { return PageCheckout }
func (p *CheckoutPage) Title() string        { return "Checkout" }
func (p *CheckoutPage) Loading() bool        { return p.ips.Loading() }
func (p *CheckoutPage) CapturingInput() bool { return p.typing }
func (p *CheckoutPage) HelpText() string     { return "/ search  enter details" }

// Items returns the IPs matching the current search.
func (p *CheckoutPage) Items() []string { return p.ips.Items() }

func (p *CheckoutPage) Init() tea.Cmd {
	p.ips.Start(p.deps.ctx())
	return nil
}

func (p *CheckoutPage) Leave() { p.ips.Stop() }

func (p *CheckoutPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case poll.Snapshot[string]:
		if p.ips.Apply(msg) {
			p.cursor.clamp(len(p.ips.Items()))
		}
	case tea.KeyMsg:
		if p.typing {
			return p.updateSearch(msg), nil
		}
		items := p.ips.Items()
		switch {
		case key.Matches(msg, keys.Search):
			p.typing = true
			return p.search.Focus(), nil
		case key.Matches(msg, keys.Escape):
			p.search.SetValue("")
			p.ips.SetNeedle("")
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
			p.ips.Source().Refresh()
		case key.Matches(msg, keys.Enter):
			if p.cursor.sel < len(items) {
				return nil, &PageNav{PageID: PageCheckoutDetail, Params: items[p.cursor.sel]}
			}
		}
	}
	return nil, nil
}

func (p *CheckoutPage) updateSearch(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch msg.Type {
	case tea.KeyEnter:
		p.typing = false
		p.search.Blur()
	case tea.KeyEsc:
		p.typing = false
		p.search.Blur()
		p.search.SetValue("")
	default:
		p.search, cmd = p.search.Update(msg)
	}
	p.ips.SetNeedle(p.search.Value())
	p.cursor.clamp(len(p.ips.Items()))
	return cmd
}

func (p *CheckoutPage) View(width, height int) string {
	var top string
	deckHeight := height
	if p.typing || p.search.Value() != "" {
		top = p.search.View()
		deckHeight--
	}

	items := p.ips.Items()
	ctx := p.ips.Context(width, deckHeight)
	deck := renderDeck(
		fmt.Sprintf("IP addresses (%d)", len(items)), deckStatus(ctx),
		deckBody(ctx, items, &p.cursor, width-2, max(1, deckHeight-3), true, "No IP addresses"),
		width, deckHeight, true,
	)
	if top == "" {
		return deck
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, deck)
}
