package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const statusTTL = 5 * time.Second

// App is the top-level Bubble Tea model that routes between pages.
type App struct {
	pages     []Page
	index     map[string]int
	activeIdx int

	width  int
	height int

	sidebarVisible     bool
	reverseScrollWheel bool

	status   string
	statusAt time.Time
	spinning bool
	now      func() time.Time
}

// AppOption configures an App.
type AppOption func(*App)

// WithReverseScrollWheel inverts mouse wheel direction.
func WithReverseScrollWheel(reverse bool) AppOption {
	return func(a *App) { a.reverseScrollWheel = reverse }
}

// NewApp creates a new App with the given pages. The first page is the default.
func NewApp(pages []Page, opts ...AppOption) *App {
	index := make(map[string]int, len(pages))
	for i, p := range pages {
		index[p.ID()] = i
	}
	a := &App{
		pages:          pages,
		index:          index,
		sidebarVisible: true,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ActivePage returns the id of the page on screen.
func (a *App) ActivePage() string {
	if p := a.active(); p != nil {
		return p.ID()
	}
	return ""
}

// Close leaves the active page so its sources stop.
func (a *App) Close() {
	if lp, ok := a.active().(LeavingPage); ok {
		lp.Leave()
	}
}

func (a *App) active() Page {
	if a.activeIdx < 0 || a.activeIdx >= len(a.pages) {
		return nil
	}
	return a.pages[a.activeIdx]
}

func (a *App) Init() tea.Cmd {
	p := a.active()
	if p == nil {
		return nil
	}
	return tea.Batch(p.Init(), a.startSpinnerIfNeeded())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, a.broadcast(a.pageSize())

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		return a, a.handleMouse(msg)

	case ActionMsg:
		switch msg.Action {
		case ActionNavigate:
			if nav, ok := msg.Payload.(PageNav); ok {
				return a, a.switchTo(nav)
			}
		case ActionSetStatus:
			if text, ok := msg.Payload.(string); ok {
				a.status, a.statusAt = text, a.now()
			}
		}
		return a, nil

	case SpinnerTickMsg:
		return a, a.handleSpinnerTick()
	}

	return a, a.broadcast(msg)
}

// broadcast delivers msg to every page so background sources can update
// pages that are not on screen. Only the active page may navigate.
func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var nav *PageNav
	for i, p := range a.pages {
		cmd, n := p.Update(msg)
		cmds = append(cmds, cmd)
		if i == a.activeIdx && n != nil {
			nav = n
		}
	}
	if nav != nil {
		cmds = append(cmds, a.switchTo(*nav))
	}
	cmds = append(cmds, a.startSpinnerIfNeeded())
	return tea.Batch(cmds...)
}

func (a *App) forward(msg tea.Msg) tea.Cmd {
	p := a.active()
	if p == nil {
		return nil
	}
	cmd, nav := p.Update(msg)
	cmds := []tea.Cmd{cmd}
	if nav != nil {
		cmds = append(cmds, a.switchTo(*nav))
	}
	cmds = append(cmds, a.startSpinnerIfNeeded())
	return tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.ForceQuit) {
		a.Close()
		return a, tea.Quit
	}
	if ip, ok := a.active().(InputPage); ok && ip.CapturingInput() {
		return a, a.forward(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		a.Close()
		return a, tea.Quit
	case key.Matches(msg, keys.ToggleSidebar):
		a.sidebarVisible = !a.sidebarVisible
		return a, a.broadcast(a.pageSize())
	case key.Matches(msg, keys.NextPage):
		return a, a.cyclePage(1)
	case key.Matches(msg, keys.PrevPage):
		return a, a.cyclePage(-1)
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		if r := msg.Runes[0]; r >= '1' && r <= '9' {
			nav := a.navPages()
			if i := int(r - '1'); i < len(nav) {
				return a, a.switchTo(PageNav{PageID: a.pages[nav[i]].ID()})
			}
		}
	}
	return a, a.forward(msg)
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		if a.sidebarVisible && msg.X < sidebarWidth {
			if idx, ok := a.sidebarPageAtRow(msg.Y); ok {
				return a.switchTo(PageNav{PageID: a.pages[idx].ID()})
			}
			return nil
		}
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		up := msg.Button == tea.MouseButtonWheelUp
		if a.reverseScrollWheel {
			up = !up
		}
		if up {
			return a.forward(tea.KeyMsg{Type: tea.KeyUp})
		}
		return a.forward(tea.KeyMsg{Type: tea.KeyDown})
	}
	return a.forward(msg)
}

// switchTo leaves the active page and initializes the requested one.
func (a *App) switchTo(nav PageNav) tea.Cmd {
	idx, ok := a.index[nav.PageID]
	if !ok {
		return nil
	}
	if idx != a.activeIdx {
		if lp, ok := a.active().(LeavingPage); ok {
			lp.Leave()
		}
	}
	a.activeIdx = idx
	p := a.pages[idx]
	if pp, ok := p.(ParamPage); ok {
		pp.SetParams(nav.Params)
	}
	return tea.Batch(p.Init(), a.startSpinnerIfNeeded())
}

func (a *App) cyclePage(delta int) tea.Cmd {
	nav := a.navPages()
	if len(nav) == 0 {
		return nil
	}
	pos := 0
	for i, idx := range nav {
		if idx == a.activeIdx {
			pos = i
		}
	}
	pos = (pos + delta + len(nav)) % len(nav)
	return a.switchTo(PageNav{PageID: a.pages[nav[pos]].ID()})
}

// navPages returns the indexes of pages listed in the sidebar.
func (a *App) navPages() []int {
	out := make([]int, 0, len(a.pages))
	for i, p := range a.pages {
		if hp, ok := p.(HiddenPage); ok && hp.Hidden() {
			continue
		}
		out = append(out, i)
	}
	return out
}

func (a *App) contentWidth() int {
	if a.sidebarVisible {
		return max(40, a.width-sidebarWidth)
	}
	return a.width
}

// pageSize is the WindowSizeMsg pages see: the area beside the sidebar and
// above the status line.
func (a *App) pageSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: a.contentWidth(), Height: max(1, a.height-1)}
}

func (a *App) View() string {
	if a.width <= 0 || a.height <= 0 {
		return "Initializing dashboard..."
	}
	if a.height < 15 || a.width < 60 {
		return "Terminal too small. Resize to at least 60x15."
	}

	size := a.pageSize()
	body := "No active page"
	if p := a.active(); p != nil {
		body = p.View(size.Width, size.Height)
	}
	body = lipgloss.NewStyle().MaxWidth(size.Width).MaxHeight(size.Height).Render(body)
	content := lipgloss.JoinVertical(lipgloss.Left, body, a.renderStatusLine(size.Width))

	if !a.sidebarVisible {
		return content
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, a.renderSidebar(a.height-2), content)
}
