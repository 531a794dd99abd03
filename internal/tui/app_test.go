package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// stubPage records the lifecycle calls the app makes.
type stubPage struct {
	id, title string
	hidden    bool
	parent    string
	capturing bool

	inits  int
	leaves int
	params any
	keys   []string
}

func (p *stubPage) ID() string           { return p.id }
func (p *stubPage) Title() string        { return p.title }
func (p *stubPage) Hidden() bool         { return p.hidden }
func (p *stubPage) Parent() string       { return p.parent }
func (p *stubPage) CapturingInput() bool { return p.capturing }
func (p *stubPage) SetParams(params any) { p.params = params }
func (p *stubPage) Leave()               { p.leaves++ }

func (p *stubPage) Init() tea.Cmd {
	p.inits++
	return nil
}

func (p *stubPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	if km, ok := msg.(tea.KeyMsg); ok {
		p.keys = append(p.keys, km.String())
		if km.String() == "enter" && p.id == "list" {
			return nil, &PageNav{PageID: "detail", Params: "row-1"}
		}
	}
	return nil, nil
}

func (p *stubPage) View(_, _ int) string { return "page " + p.id }

func newStubApp() (*App, []*stubPage) {
	pages := []*stubPage{
		{id: "list", title: "List"},
		{id: "detail", title: "Detail", hidden: true, parent: "list"},
		{id: "other", title: "Other"},
	}
	generic := make([]Page, len(pages))
	for i, p := range pages {
		generic[i] = p
	}
	a := NewApp(generic)
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return a, pages
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestApp_InitStartsFirstPage(t *testing.T) {
	t.Parallel()

	a, pages := newStubApp()
	a.Init()
	if pages[0].inits != 1 {
		t.Fatalf("first page inits = %d, want 1", pages[0].inits)
	}
	if a.ActivePage() != "list" {
		t.Fatalf("active page = %q", a.ActivePage())
	}
}

func TestApp_NavigationLeavesAndPassesParams(t *testing.T) {
	t.Parallel()

	a, pages := newStubApp()
	a.Init()

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if a.ActivePage() != "detail" {
		t.Fatalf("active page = %q, want detail", a.ActivePage())
	}
	if pages[0].leaves != 1 {
		t.Fatalf("list leaves = %d, want 1", pages[0].leaves)
	}
	if pages[1].params != "row-1" || pages[1].inits != 1 {
		t.Fatalf("detail params=%v inits=%d", pages[1].params, pages[1].inits)
	}

	a.Update(ActionMsg{Action: ActionNavigate, Payload: PageNav{PageID: "other"}})
	if a.ActivePage() != "other" || pages[1].leaves != 1 {
		t.Fatalf("navigate action: active=%q detail leaves=%d", a.ActivePage(), pages[1].leaves)
	}
}

func TestApp_CycleAndDigitsSkipHiddenPages(t *testing.T) {
	t.Parallel()

	a, _ := newStubApp()
	a.Update(keyRunes("]"))
	if a.ActivePage() != "other" {
		t.Fatalf("] -> %q, want other", a.ActivePage())
	}
	a.Update(keyRunes("]"))
	if a.ActivePage() != "list" {
		t.Fatalf("] wraps -> %q, want list", a.ActivePage())
	}
	a.Update(keyRunes("2"))
	if a.ActivePage() != "other" {
		t.Fatalf("2 -> %q, want other", a.ActivePage())
	}
	a.Update(keyRunes("9"))
	if a.ActivePage() != "other" {
		t.Fatal("out of range digit must not switch pages")
	}
}

func TestApp_CapturingPageReceivesGlobalKeys(t *testing.T) {
	t.Parallel()

	a, pages := newStubApp()
	pages[0].capturing = true

	_, cmd := a.Update(keyRunes("q"))
	if isQuit(cmd) {
		t.Fatal("q must be typed into a capturing page, not quit")
	}
	a.Update(keyRunes("]"))
	if a.ActivePage() != "list" {
		t.Fatal("] must not switch pages while capturing")
	}
	if got := strings.Join(pages[0].keys, ","); got != "q,]" {
		t.Fatalf("forwarded keys = %q", got)
	}

	_, cmd = a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !isQuit(cmd) {
		t.Fatal("ctrl+c always quits")
	}
	if pages[0].leaves != 1 {
		t.Fatal("quitting leaves the active page")
	}
}

func TestApp_QuitLeavesActivePage(t *testing.T) {
	t.Parallel()

	a, pages := newStubApp()
	_, cmd := a.Update(keyRunes("q"))
	if !isQuit(cmd) {
		t.Fatal("q should quit")
	}
	if pages[0].leaves != 1 {
		t.Fatalf("leaves = %d, want 1", pages[0].leaves)
	}
}

func TestApp_SidebarMarksParentOfHiddenPage(t *testing.T) {
	t.Parallel()

	a, _ := newStubApp()
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})

	lines := a.buildSidebarLines()
	if len(lines) != sidebarHeaderRows+2 {
		t.Fatalf("sidebar lines = %d, want %d", len(lines), sidebarHeaderRows+2)
	}
	if !strings.Contains(lines[sidebarHeaderRows], "> 1 List") {
		t.Fatalf("parent of hidden page should be marked, got %q", lines[sidebarHeaderRows])
	}
}

func TestApp_ToggleSidebarWidensContent(t *testing.T) {
	t.Parallel()

	a, _ := newStubApp()
	before := a.pageSize().Width
	a.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	if after := a.pageSize().Width; after != 120 || after <= before {
		t.Fatalf("content width %d -> %d", before, after)
	}
}

func TestApp_MouseWheelHonoursReverse(t *testing.T) {
	t.Parallel()

	pages := []Page{&stubPage{id: "list", title: "List"}}
	a := NewApp(pages, WithReverseScrollWheel(true))
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	a.Update(tea.MouseMsg{X: 60, Y: 5, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})

	got := pages[0].(*stubPage).keys
	if len(got) != 1 || got[0] != "down" {
		t.Fatalf("reversed wheel up = %v, want [down]", got)
	}
}

func TestApp_StatusLineShowsAndExpiresStatus(t *testing.T) {
	t.Parallel()

	a, _ := newStubApp()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return now }

	a.Update(ActionMsg{Action: ActionSetStatus, Payload: "Saved"})
	if !strings.Contains(a.renderStatusLine(100), "Saved") {
		t.Fatal("status should be visible")
	}
	now = now.Add(statusTTL + time.Second)
	if strings.Contains(a.renderStatusLine(100), "Saved") {
		t.Fatal("status should expire")
	}
}

func TestApp_ViewRequiresMinimumSize(t *testing.T) {
	t.Parallel()

	a, _ := newStubApp()
	a.Update(tea.WindowSizeMsg{Width: 50, Height: 10})
	if !strings.Contains(a.View(), "Terminal too small") {
		t.Fatal("expected size warning")
	}
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if !strings.Contains(a.View(), "page list") {
		t.Fatal("expected active page content")
	}
}
