package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/syncflow/dashboard/internal/assistant"
	"github.com/syncflow/dashboard/internal/model"
	"github.com/syncflow/dashboard/internal/poll"
)

func TestRosterPage_FetchSearchAndOpen(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	p := NewRosterPage(h.deps)
	if got := len(p.Items()); got != len(model.SampleEmployees) {
		t.Fatalf("seeded roster = %d, want %d", got, len(model.SampleEmployees))
	}

	p.Init()
	defer p.Leave()
	p.Update(waitSnapshot[model.Employee](t, h, "roster"))
	if got := len(p.Items()); got != 10 {
		t.Fatalf("roster = %d, want 10", got)
	}

	p.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	if p.cursor.sel != 9 {
		t.Fatalf("pgdown selection = %d, want 9", p.cursor.sel)
	}
	p.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	if p.cursor.sel != 0 {
		t.Fatalf("pgup selection = %d, want 0", p.cursor.sel)
	}

	p.Update(keyRunes("/"))
	if !p.CapturingInput() {
		t.Fatal("/ should focus search")
	}
	typeText(p, "Sita")
	p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.CapturingInput() {
		t.Fatal("enter should leave search")
	}
	items := p.Items()
	if len(items) != 1 || items[0].Name != "Sita Sharma" {
		t.Fatalf("search result = %v", items)
	}

	_, nav := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if nav == nil || nav.PageID != PageEmployee {
		t.Fatalf("enter nav = %+v, want employee page", nav)
	}
	if e, ok := nav.Params.(model.Employee); !ok || e.EmployeeID != "234567890" {
		t.Fatalf("nav params = %+v", nav.Params)
	}

	p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if got := len(p.Items()); got != 10 {
		t.Fatalf("esc should clear the search, got %d items", got)
	}
	if view := p.View(100, 20); !strings.Contains(view, "Employees (10)") {
		t.Fatalf("view missing title:\n%s", view)
	}
}

func TestEmployeePage_AutoScrollGatesFetching(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	p := NewEmployeePage(h.deps)
	p.SetParams(model.SampleEmployees[0])
	p.Init()
	defer p.Leave()

	p.Update(waitSnapshot[model.NetworkLog](t, h, "intruder"))
	n := len(p.logs.Items())
	if n == 0 {
		t.Fatal("expected intruder logs")
	}
	if p.cursor.sel != n-1 {
		t.Fatalf("auto-scroll should select the newest row, sel=%d n=%d", p.cursor.sel, n)
	}

	p.Update(keyRunes("a"))
	if p.AutoScroll() || p.logs.Source().Enabled() {
		t.Fatal("turning auto-scroll off must pause the source")
	}
	p.Update(keyRunes("a"))
	if !p.AutoScroll() || !p.logs.Source().Enabled() {
		t.Fatal("turning auto-scroll on must resume the source")
	}

	p.Update(keyRunes("k"))
	if p.AutoScroll() {
		t.Fatal("scrolling up should stop following")
	}

	view := p.View(120, 30)
	if !strings.Contains(view, "Rohan Mishra") || !strings.Contains(view, "auto-scroll off") {
		t.Fatalf("unexpected view:\n%s", view)
	}

	if _, nav := p.Update(tea.KeyMsg{Type: tea.KeyEsc}); nav == nil || nav.PageID != PageRoster {
		t.Fatal("esc should return to the roster")
	}
}

func TestManagementPage_SeededThenFocusSwitch(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	p := NewManagementPage(h.deps)
	m, ok := p.Selected()
	if !ok || m.Name != "John Doe" {
		t.Fatalf("seeded selection = %+v", m)
	}

	p.Update(keyRunes("j"))
	if m, _ := p.Selected(); m.Name != "Jane Smith" {
		t.Fatalf("down selected %q", m.Name)
	}
	p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p.Update(keyRunes("j"))
	if m, _ := p.Selected(); m.Name != "Jane Smith" {
		t.Fatal("moving in the reports list must keep the manager")
	}
	if p.repCur.sel != 1 {
		t.Fatalf("report cursor = %d, want 1", p.repCur.sel)
	}

	view := p.View(120, 20)
	if !strings.Contains(view, "Reports of Jane Smith") || !strings.Contains(view, "David") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestCheckoutPage_OpensSelectedIP(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	p := NewCheckoutPage(h.deps)
	if !p.Loading() {
		t.Fatal("ips should be loading before the first fetch")
	}
	p.Init()
	defer p.Leave()
	p.Update(waitSnapshot[string](t, h, "ips"))

	if got := len(p.Items()); got != 4 {
		t.Fatalf("ips = %d, want 4", got)
	}
	p.Update(keyRunes("/"))
	typeText(p, "172.")
	p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, nav := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if nav == nil || nav.PageID != PageCheckoutDetail || nav.Params != "172.16.4.20" {
		t.Fatalf("nav = %+v", nav)
	}
}

func TestCheckoutDetailPage_ChartsPortsAndPolicies(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	p := NewCheckoutDetailPage(h.deps)
	p.SetParams("10.0.0.12")
	cmd := p.Init()
	defer p.Leave()

	for _, msg := range runCmd(cmd) {
		p.Update(msg)
	}
	if got := len(p.Policies()); got != 2 {
		t.Fatalf("policies = %d, want 2", got)
	}

	logs := waitSnapshot[model.NetworkLog](t, h, "logs@10.0.0.12")
	p.Update(logs)
	if got := p.Series().Total(); got == 0 {
		t.Fatal("hourly series should count the fetched logs")
	}
	p.Update(waitSnapshot[string](t, h, "ports@10.0.0.12"))
	if got := len(p.ports.Items()); got != 3 {
		t.Fatalf("ports = %d, want 3", got)
	}

	stale := logs
	stale.Source = "logs@10.0.0.31"
	stale.Seq = logs.Seq + 10
	stale.Items = nil
	p.Update(stale)
	if p.Series().Total() == 0 {
		t.Fatal("snapshot from another IP must not replace the logs")
	}

	view := p.View(140, 40)
	for _, want := range []string{"Incoming", "Outgoing", "Open ports (3)", "Block telnet"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestCheckoutDetailPage_NoPoliciesAndSwitchingIP(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	p := NewCheckoutDetailPage(h.deps)
	p.SetParams("10.0.0.12")
	first := p.Init()

	p.SetParams("172.16.4.20")
	second := p.Init()
	defer p.Leave()

	// The reply for the previous IP arrives late and is dropped.
	for _, msg := range runCmd(first) {
		p.Update(msg)
	}
	if p.policiesLoaded {
		t.Fatal("policies for a previous IP must be ignored")
	}
	for _, msg := range runCmd(second) {
		p.Update(msg)
	}
	if !strings.Contains(p.View(140, 40), "No policies found") {
		t.Fatal("expected empty policies placeholder")
	}
	if _, nav := p.Update(tea.KeyMsg{Type: tea.KeyEsc}); nav == nil || nav.PageID != PageCheckout {
		t.Fatal("esc should return to the IP list")
	}
}

func TestSysInfoPage_RendersHost(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	p := NewSysInfoPage(h.deps)
	p.Init()
	defer p.Leave()
	p.Update(waitSnapshot[model.SysInfo](t, h, "sysinfo"))

	info, ok := p.Info()
	if !ok || info.HostInfo.Hostname != "syncflow-gw" {
		t.Fatalf("info = %+v", info)
	}
	view := p.View(100, 30)
	if !strings.Contains(view, "syncflow-gw") || !strings.Contains(view, "25.46%") {
		t.Fatalf("unexpected view:\n%s", view)
	}
	total := humanize.IBytes(info.MemoryInfo.Total)
	if !strings.Contains(view, total) || !strings.Contains(total, "iB") {
		t.Fatalf("view should show total memory as %q:\n%s", total, view)
	}
}

func TestAnalyticsPage_RendersBothCharts(t *testing.T) {
	t.Parallel()

	view := NewAnalyticsPage().View(120, 24)
	for _, want := range []string{"Tasks per week", "Employee ranking", "Rohan Mishra"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

// memTasks is an in-memory TaskRepository.
type memTasks struct {
	mu     sync.Mutex
	tasks  []model.Task
	nextID int64
}

func (m *memTasks) List(context.Context) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Task(nil), m.tasks...), nil
}

func (m *memTasks) Create(_ context.Context, t model.Task) (model.Task, error) {
	if t.Name == "" {
		return model.Task{}, errors.New("name is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	t.ID = m.nextID
	m.tasks = append(m.tasks, t)
	return t, nil
}

func (m *memTasks) Update(_ context.Context, t model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == t.ID {
			m.tasks[i] = t
			return nil
		}
	}
	return errors.New("not found")
}

func (m *memTasks) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

// settle feeds cmd's messages back into p until nothing is left.
func settle(p Page, cmd tea.Cmd) []tea.Msg {
	var seen []tea.Msg
	for _, msg := range runCmd(cmd) {
		seen = append(seen, msg)
		next, _ := p.Update(msg)
		seen = append(seen, settle(p, next)...)
	}
	return seen
}

func TestTasksPage_CreateEditDelete(t *testing.T) {
	t.Parallel()

	repo := &memTasks{}
	p := NewTasksPage(Deps{Tasks: repo})
	settle(p, p.Init())
	if p.Loading() || len(p.Items()) != 0 {
		t.Fatal("expected an empty, loaded list")
	}

	p.Update(keyRunes("n"))
	if !p.CapturingInput() {
		t.Fatal("the form should capture input")
	}
	typeText(p, "Write report")
	p.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(p, "weekly numbers")
	p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p.Update(tea.KeyMsg{Type: tea.KeyRight})
	p.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(p, "2024-06-30")
	cmd, _ := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msgs := settle(p, cmd)

	items := p.Items()
	if len(items) != 1 {
		t.Fatalf("tasks = %d, want 1", len(items))
	}
	got := items[0]
	if got.Name != "Write report" || got.Description != "weekly numbers" ||
		got.AssigneeID != model.AssigneeIDs[1] || got.Deadline != "2024-06-30" {
		t.Fatalf("created task = %+v", got)
	}
	if !hasStatus(msgs, `Created task "Write report"`) {
		t.Fatalf("missing status flash in %v", msgs)
	}

	p.Update(keyRunes("e"))
	typeText(p, " v2")
	cmd, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	settle(p, cmd)
	if got := p.Items()[0]; got.Name != "Write report v2" || got.ID != items[0].ID {
		t.Fatalf("edited task = %+v", got)
	}

	p.Update(keyRunes("d"))
	if !strings.Contains(p.View(120, 20), "Delete selected task?") {
		t.Fatal("delete should ask for confirmation")
	}
	cmd, _ = p.Update(keyRunes("y"))
	settle(p, cmd)
	if len(p.Items()) != 0 {
		t.Fatal("task should be deleted")
	}
}

func TestTasksPage_SaveErrorGoesToStatus(t *testing.T) {
	t.Parallel()

	p := NewTasksPage(Deps{Tasks: &memTasks{}})
	settle(p, p.Init())
	p.Update(keyRunes("n"))
	cmd, _ := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if msgs := settle(p, cmd); !hasStatus(msgs, "Save failed: name is required") {
		t.Fatalf("expected save error status, got %v", msgs)
	}
}

func hasStatus(msgs []tea.Msg, text string) bool {
	for _, m := range msgs {
		if a, ok := m.(ActionMsg); ok && a.Action == ActionSetStatus && a.Payload == text {
			return true
		}
	}
	return false
}

type echoGenerator struct{ fail bool }

func (g echoGenerator) Generate(_ context.Context, prompt string) (string, error) {
	if g.fail {
		return "", errors.New("runtime down")
	}
	return "echo: " + prompt, nil
}

func TestChatPage_SendAndReply(t *testing.T) {
	t.Parallel()

	chat := assistant.NewChat(echoGenerator{})
	p := NewChatPage(Deps{Chat: chat})
	p.Init()
	if !p.CapturingInput() {
		t.Fatal("input should be focused on entry")
	}

	if cmd, _ := p.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatal("blank input must not be sent")
	}

	typeText(p, "hello")
	cmd, _ := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !p.Thinking() || !strings.Contains(p.View(80, 20), "thinking...") {
		t.Fatal("expected thinking indicator")
	}
	settle(p, cmd)
	if p.Thinking() {
		t.Fatal("reply should clear thinking")
	}

	msgs := chat.Messages()
	if len(msgs) != 2 || msgs[1].Text != "echo: hello" || msgs[1].Sender != assistant.SenderAI {
		t.Fatalf("transcript = %+v", msgs)
	}
	if !strings.Contains(p.View(80, 20), "echo: hello") {
		t.Fatal("reply should be rendered")
	}

	p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.CapturingInput() {
		t.Fatal("esc should release the input")
	}
}

func TestChatPage_FailureShowsErrorReply(t *testing.T) {
	t.Parallel()

	chat := assistant.NewChat(echoGenerator{fail: true})
	p := NewChatPage(Deps{Chat: chat})
	p.Init()
	typeText(p, "hi")
	cmd, _ := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msgs := settle(p, cmd)

	if !hasStatus(msgs, "Assistant unavailable") {
		t.Fatal("expected status flash")
	}
	if got := chat.Messages(); got[len(got)-1].Text != assistant.ErrorReply {
		t.Fatalf("last message = %+v", got[len(got)-1])
	}
}

func TestPagesIgnoreForeignSnapshots(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	roster := NewRosterPage(h.deps)
	roster.Init()
	defer roster.Leave()

	foreign := poll.Snapshot[model.Employee]{Source: "someone-else", Seq: 99, Items: []model.Employee{{Name: "X"}}}
	roster.Update(foreign)
	for _, e := range roster.Items() {
		if e.Name == "X" {
			t.Fatal("foreign snapshot applied")
		}
	}
}
