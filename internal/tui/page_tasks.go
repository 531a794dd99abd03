package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/syncflow/dashboard/internal/model"
	"github.com/syncflow/dashboard/internal/projection"
)

type tasksMode int

const (
	tasksBrowse tasksMode = iota
	tasksSearch
	tasksForm
	tasksConfirmDelete
)

// Form fields, in tab order.
const (
	fieldName = iota
	fieldDescription
	fieldAssignee
	fieldDeadline
	fieldCount
)

type tasksLoadedMsg struct {
	tasks []model.Task
	err   error
}

type taskSavedMsg struct {
	task    model.Task
	created bool
	err     error
}

type taskDeletedMsg struct {
	id  int64
	err error
}

// taskForm edits one task. Assignee is picked from model.AssigneeIDs.
type taskForm struct {
	editing  *model.Task
	inputs   [fieldCount]textinput.Model
	assignee int
	focus    int
}

func newTaskForm(editing *model.Task) *taskForm {
	f := &taskForm{editing: editing}
	placeholders := [fieldCount]string{"Name", "Description", "", "Deadline (YYYY-MM-DD)"}
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 200
		f.inputs[i] = in
	}
	if editing != nil {
		f.inputs[fieldName].SetValue(editing.Name)
		f.inputs[fieldDescription].SetValue(editing.Description)
		f.inputs[fieldDeadline].SetValue(editing.Deadline)
		f.assignee = max(0, slices.Index(model.AssigneeIDs, editing.AssigneeID))
		for i := range f.inputs {
			f.inputs[i].CursorEnd()
		}
	}
	f.inputs[fieldName].Focus()
	return f
}

func (f *taskForm) setFocus(i int) {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		if j == f.focus && j != fieldAssignee {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *taskForm) task() model.Task {
	t := model.Task{}
	if f.editing != nil {
		t = *f.editing
	}
	t.Name = strings.TrimSpace(f.inputs[fieldName].Value())
	t.Description = strings.TrimSpace(f.inputs[fieldDescription].Value())
	t.Deadline = strings.TrimSpace(f.inputs[fieldDeadline].Value())
	if len(model.AssigneeIDs) > 0 {
		t.AssigneeID = model.AssigneeIDs[f.assignee]
	}
	return t
}

func (f *taskForm) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		f.setFocus(f.focus + 1)
		return nil
	case tea.KeyShiftTab, tea.KeyUp:
		f.setFocus(f.focus - 1)
		return nil
	}
	if f.focus == fieldAssignee {
		n := len(model.AssigneeIDs)
		switch msg.Type {
		case tea.KeyLeft:
			f.assignee = (f.assignee - 1 + n) % n
		case tea.KeyRight, tea.KeySpace:
			f.assignee = (f.assignee + 1) % n
		}
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *taskForm) view(width int) string {
	title := "New task"
	if f.editing != nil {
		title = fmt.Sprintf("Edit task %d", f.editing.ID)
	}
	labels := [fieldCount]string{"Name", "Description", "Assignee", "Deadline"}
	lines := []string{deckTitleStyle.Render(title), ""}
	for i, label := range labels {
		marker := "  "
		if i == f.focus {
			marker = "> "
		}
		var value string
		if i == fieldAssignee {
			value = "< " + model.AssigneeIDs[f.assignee] + " >"
		} else {
			value = f.inputs[i].View()
		}
		lines = append(lines, marker+labelStyle.Render(padRight(label+":", 13))+value)
	}
	lines = append(lines, "", helpStyle.Render("tab next field  enter save  esc cancel"))
	return activeSectionStyle.Width(max(20, width-2)).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// TasksPage lists the persisted tasks and edits them.
type TasksPage struct {
	deps   Deps
	proj   *projection.Projection[model.Task]
	cursor listCursor
	search textinput.Model
	mode   tasksMode
	form   *taskForm
	loaded bool
	err    error
}

// NewTasksPage creates the tasks page.
func NewTasksPage(deps Deps) *TasksPage {
	search := textinput.New()
	search.Placeholder = "Search by name..."
	search.CharLimit = 100
	return &TasksPage{
		deps:   deps,
		proj:   projection.New(func(t model.Task) string { return t.Name }),
		search: search,
	}
}

func (p *TasksPage) ID() string    { return PageTasks }
func (p *TasksPage) Title() string { return "Tasks" }

func (p *TasksPage) CapturingInput() bool { return p.mode == tasksSearch || p.mode == tasksForm }

func (p *TasksPage) Loading() bool { return p.deps.Tasks != nil && !p.loaded }

func (p *TasksPage) HelpText() string {
	switch p.mode {
	case tasksForm:
		return "enter save  esc cancel"
	case tasksConfirmDelete:
		return "y confirm  n cancel"
	}
	return "n new  e edit  d delete  / search"
}

// Items returns the tasks matching the current search.
func (p *TasksPage) Items() []model.Task { return p.proj.View() }

func (p *TasksPage) Init() tea.Cmd { return p.load() }

func (p *TasksPage) load() tea.Cmd {
	repo := p.deps.Tasks
	if repo == nil {
		return nil
	}
	ctx := p.deps.ctx()
	return func() tea.Msg {
		tasks, err := repo.List(ctx)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (p *TasksPage) save(t model.Task, created bool) tea.Cmd {
	repo := p.deps.Tasks
	if repo == nil {
		return setStatus("Task storage unavailable")
	}
	ctx := p.deps.ctx()
	return func() tea.Msg {
		if created {
			saved, err := repo.Create(ctx, t)
			return taskSavedMsg{task: saved, created: true, err: err}
		}
		return taskSavedMsg{task: t, err: repo.Update(ctx, t)}
	}
}

func (p *TasksPage) remove(id int64) tea.Cmd {
	repo := p.deps.Tasks
	if repo == nil {
		return setStatus("Task storage unavailable")
	}
	ctx := p.deps.ctx()
	return func() tea.Msg {
		return taskDeletedMsg{id: id, err: repo.Delete(ctx, id)}
	}
}

func (p *TasksPage) selected() (model.Task, bool) {
	items := p.proj.View()
	if p.cursor.sel >= len(items) {
		return model.Task{}, false
	}
	return items[p.cursor.sel], true
}

func (p *TasksPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		p.loaded = true
		p.err = msg.err
		if msg.err == nil {
			p.proj.SetItems(msg.tasks)
			p.cursor.clamp(p.proj.Len())
		}
	case taskSavedMsg:
		if msg.err != nil {
			return setStatus("Save failed: " + msg.err.Error()), nil
		}
		verb := "Updated"
		if msg.created {
			verb = "Created"
		}
		return tea.Batch(p.load(), setStatus(fmt.Sprintf("%s task %q", verb, msg.task.Name))), nil
	case taskDeletedMsg:
		if msg.err != nil {
			return setStatus("Delete failed: " + msg.err.Error()), nil
		}
		return tea.Batch(p.load(), setStatus(fmt.Sprintf("Deleted task %d", msg.id))), nil
	case tea.KeyMsg:
		return p.handleKey(msg), nil
	}
	return nil, nil
}

func (p *TasksPage) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch p.mode {
	case tasksSearch:
		return p.updateSearch(msg)
	case tasksForm:
		switch msg.Type {
		case tea.KeyEsc:
			p.mode, p.form = tasksBrowse, nil
			return nil
		case tea.KeyEnter:
			t := p.form.task()
			created := p.form.editing == nil
			p.mode, p.form = tasksBrowse, nil
			return p.save(t, created)
		}
		return p.form.update(msg)
	case tasksConfirmDelete:
		p.mode = tasksBrowse
		if msg.String() == "y" {
			if t, ok := p.selected(); ok {
				return p.remove(t.ID)
			}
		}
		return nil
	}

	n := p.proj.Len()
	switch {
	case key.Matches(msg, keys.Search):
		p.mode = tasksSearch
		return p.search.Focus()
	case key.Matches(msg, keys.Escape):
		p.search.SetValue("")
		p.proj.SetNeedle("")
		p.cursor.clamp(p.proj.Len())
	case key.Matches(msg, keys.New):
		p.mode, p.form = tasksForm, newTaskForm(nil)
	case key.Matches(msg, keys.Edit):
		if t, ok := p.selected(); ok {
			p.mode, p.form = tasksForm, newTaskForm(&t)
		}
	case key.Matches(msg, keys.Delete):
		if _, ok := p.selected(); ok {
			p.mode = tasksConfirmDelete
		}
	case key.Matches(msg, keys.Refresh):
		return p.load()
	case key.Matches(msg, keys.Up):
		p.cursor.move(-1, n)
	case key.Matches(msg, keys.Down):
		p.cursor.move(1, n)
	case key.Matches(msg, keys.Home):
		p.cursor.home()
	case key.Matches(msg, keys.End):
		p.cursor.end(n)
	case key.Matches(msg, keys.PageUp):
		p.cursor.move(-pageStep, n)
	case key.Matches(msg, keys.PageDown):
		p.cursor.move(pageStep, n)
	}
	return nil
}

func (p *TasksPage) updateSearch(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch msg.Type {
	case tea.KeyEnter:
		p.mode = tasksBrowse
		p.search.Blur()
	case tea.KeyEsc:
		p.mode = tasksBrowse
		p.search.Blur()
		p.search.SetValue("")
	default:
		p.search, cmd = p.search.Update(msg)
	}
	p.proj.SetNeedle(p.search.Value())
	p.cursor.clamp(p.proj.Len())
	return cmd
}

func (p *TasksPage) View(width, height int) string {
	if p.mode == tasksForm && p.form != nil {
		return p.form.view(width)
	}

	var top string
	deckHeight := height
	if p.mode == tasksSearch || p.search.Value() != "" {
		top = p.search.View()
		deckHeight--
	}

	inner := width - 2
	items := p.proj.View()
	rows := make([]string, 0, len(items))
	for _, t := range items {
		rows = append(rows, fmt.Sprintf("%-14d %-24s %-11s %-10s %s",
			t.ID, truncate(t.Name, 24), t.AssigneeID, t.Deadline, t.Description))
	}
	header := headerRowStyle.Render(padRight(fmt.Sprintf("%-14s %-24s %-11s %-10s %s",
		"ID", "Name", "Assignee", "Deadline", "Description"), inner))

	ctx := ViewContext{
		ContentWidth:  width,
		ContentHeight: deckHeight,
		Needle:        p.proj.Needle(),
		DeckLoading:   p.Loading(),
	}
	status := deckStatus(ctx)
	switch {
	case p.deps.Tasks == nil:
		status = errorStyle.Render("Task storage unavailable")
	case p.err != nil:
		status = errorStyle.Render("Failed to load tasks")
	case p.mode == tasksConfirmDelete:
		status = errorStyle.Render("Delete selected task? (y/n)")
	}

	body := deckBody(ctx, rows, &p.cursor, inner, max(1, deckHeight-4), true, "No tasks yet. Press n to add one.")
	deck := renderDeck(fmt.Sprintf("Tasks (%d)", len(items)), status,
		lipgloss.JoinVertical(lipgloss.Left, header, body), width, deckHeight, true)
	if top == "" {
		return deck
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, deck)
}
