package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/syncflow/dashboard/internal/chart"
	"github.com/syncflow/dashboard/internal/model"
	"github.com/syncflow/dashboard/internal/poll"
)

type policiesLoadedMsg struct {
	ip       string
	policies []model.Policy
	err      error
}

// CheckoutDetailPage shows hourly traffic, open ports and policies for one IP.
// Logs and ports are polled; policies are fetched once per visit.
type CheckoutDetailPage struct {
	deps  Deps
	ip    string
	logs  *Binding[model.NetworkLog]
	ports *Binding[string]

	policies       []model.Policy
	policiesLoaded bool
	policiesErr    error

	portCur   listCursor
	policyCur listCursor
	focus     int
}

// NewCheckoutDetailPage creates the per-IP detail page.
func NewCheckoutDetailPage(deps Deps) *CheckoutDetailPage {
	return &CheckoutDetailPage{deps: deps}
}

func (p *CheckoutDetailPage) ID() string     { return PageCheckoutDetail }
func (p *CheckoutDetailPage) Title() string  { return "Checkout: " + p.ip }
func (p *CheckoutDetailPage) Hidden() bool   { return true }
func (p *CheckoutDetailPage) Parent() string { return PageCheckout }

func (p *CheckoutDetailPage) HelpText() string { return "tab switch list  r refresh  esc back" }

// IP returns the address on display.
func (p *CheckoutDetailPage) IP() string { return p.ip }

// SetParams selects the IP. Sources are per IP, so snapshots from a
// previous IP never reach the new bindings.
func (p *CheckoutDetailPage) SetParams(params any) {
	ip, ok := params.(string)
	if !ok || ip == "" {
		return
	}
	if ip == p.ip && p.logs != nil {
		return
	}
	p.Leave()
	p.ip = ip
	p.logs = NewBinding[model.NetworkLog](newSource(
		"logs@"+ip, "Failed to fetch logs",
		p.deps.Settings.StreamInterval, 0,
		p.deps.API.CheckoutLogsFetch(ip),
	), nil, p.deps.Notifier)
	p.ports = NewBinding(newSource(
		"ports@"+ip, "Failed to fetch ports",
		p.deps.Settings.InventoryInterval, 0,
		p.deps.API.PortsFetch(ip),
	), func(port string) string { return port }, p.deps.Notifier)
	p.policies, p.policiesLoaded, p.policiesErr = nil, false, nil
	p.portCur, p.policyCur, p.focus = listCursor{}, listCursor{}, 0
}

func (p *CheckoutDetailPage) Init() tea.Cmd {
	if p.logs == nil {
		return nil
	}
	ctx := p.deps.ctx()
	p.logs.Start(ctx)
	p.ports.Start(ctx)
	if p.policiesLoaded {
		return nil
	}
	return p.fetchPolicies()
}

func (p *CheckoutDetailPage) Leave() {
	if p.logs != nil {
		p.logs.Stop()
		p.ports.Stop()
	}
}

func (p *CheckoutDetailPage) Loading() bool {
	return p.logs != nil && (p.logs.Loading() || p.ports.Loading())
}

func (p *CheckoutDetailPage) fetchPolicies() tea.Cmd {
	api, ip, ctx := p.deps.API, p.ip, p.deps.ctx()
	return func() tea.Msg {
		policies, err := api.Policies(ctx, ip)
		return policiesLoadedMsg{ip: ip, policies: policies, err: err}
	}
}

// Series returns the hourly incoming and outgoing counts of the current logs.
func (p *CheckoutDetailPage) Series() chart.HourlySeries {
	if p.logs == nil {
		return chart.BucketByHour(nil)
	}
	return chart.BucketByHour(p.logs.All())
}

// Policies returns the policies loaded for the current IP.
func (p *CheckoutDetailPage) Policies() []model.Policy { return p.policies }

func (p *CheckoutDetailPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	if p.logs == nil {
		if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, keys.Back) {
			return nil, &PageNav{PageID: PageCheckout}
		}
		return nil, nil
	}
	switch msg := msg.(type) {
	case poll.Snapshot[model.NetworkLog]:
		p.logs.Apply(msg)
	case poll.Snapshot[string]:
		if p.ports.Apply(msg) {
			p.portCur.clamp(len(p.ports.Items()))
		}
	case policiesLoadedMsg:
		if msg.ip != p.ip {
			return nil, nil
		}
		p.policiesLoaded = true
		p.policies, p.policiesErr = msg.policies, msg.err
		p.policyCur.clamp(len(p.policies))
	case tea.KeyMsg:
		cur, n := &p.portCur, len(p.ports.Items())
		if p.focus == 1 {
			cur, n = &p.policyCur, len(p.policies)
		}
		switch {
		case key.Matches(msg, keys.Back):
			return nil, &PageNav{PageID: PageCheckout}
		case key.Matches(msg, keys.NextSection):
			p.focus = (p.focus + 1) % 2
		case key.Matches(msg, keys.Refresh):
			p.logs.Source().Refresh()
			p.ports.Source().Refresh()
			p.policiesLoaded = false
			return p.fetchPolicies(), nil
		case key.Matches(msg, keys.Up):
			cur.move(-1, n)
		case key.Matches(msg, keys.Down):
			cur.move(1, n)
		case key.Matches(msg, keys.Home):
			cur.home()
		case key.Matches(msg, keys.End):
			cur.end(n)
		}
	}
	return nil, nil
}

func (p *CheckoutDetailPage) View(width, height int) string {
	if p.logs == nil {
		return helpStyle.Render("No IP selected")
	}

	chartHeight := max(6, height/2)
	listHeight := max(4, height-chartHeight)
	half := max(20, width/2)

	series := p.Series()
	logCtx := p.logs.Context(half, chartHeight)
	charts := lipgloss.JoinHorizontal(lipgloss.Top,
		renderHourlyDeck("Incoming", series.Incoming, incomingBarStyle, logCtx, half, chartHeight, false),
		renderHourlyDeck("Outgoing", series.Outgoing, outgoingBarStyle, logCtx, width-half, chartHeight, false),
	)

	ports := p.ports.Items()
	portCtx := p.ports.Context(half, listHeight)
	portDeck := renderDeck(
		fmt.Sprintf("Open ports (%d)", len(ports)), deckStatus(portCtx),
		deckBody(portCtx, ports, &p.portCur, half-2, max(1, listHeight-3), p.focus == 0, "No open ports"),
		half, listHeight, p.focus == 0,
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		charts,
		lipgloss.JoinHorizontal(lipgloss.Top, portDeck, p.renderPolicies(width-half, listHeight)),
	)
}

func (p *CheckoutDetailPage) renderPolicies(width, height int) string {
	active := p.focus == 1
	title := fmt.Sprintf("Policies (%d)", len(p.policies))
	var status, body string
	switch {
	case !p.policiesLoaded:
		body = renderLoadingPlaceholder(width-2, height-3)
	case p.policiesErr != nil:
		status = errorStyle.Render("Failed to fetch policies")
	case len(p.policies) == 0:
		body = helpStyle.Render("No policies found")
	default:
		rows := make([]string, 0, len(p.policies))
		for _, pol := range p.policies {
			rows = append(rows, formatPolicy(pol))
		}
		body = p.policyCur.renderRows(rows, width-2, max(1, height-3), active)
	}
	return renderDeck(title, status, body, width, height, active)
}

func formatPolicy(pol model.Policy) string {
	ips := make([]string, 0, len(pol.IPs))
	for _, ip := range pol.IPs {
		ips = append(ips, ip.Address)
	}
	ports := make([]string, 0, len(pol.Ports))
	for _, port := range pol.Ports {
		ports = append(ports, port.Number)
	}
	return fmt.Sprintf("#%d %s [%s] ips: %s ports: %s",
		pol.ID, pol.Name, pol.Type, strings.Join(ips, ","), strings.Join(ports, ","))
}
