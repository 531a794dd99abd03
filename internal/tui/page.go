package tui

import tea "github.com/charmbracelet/bubbletea"

// Page represents a top-level screen in the TUI (roster, tasks, checkout, ...).
type Page interface {
	ID() string
	Title() string
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Cmd, *PageNav)
	View(width, height int) string
}

// PageNav is returned from Update to request a page switch.
type PageNav struct {
	PageID string
	Params any
}

// ParamPage receives PageNav.Params before it is initialized.
type ParamPage interface {
	SetParams(params any)
}

// LeavingPage is notified when it stops being the active page.
type LeavingPage interface {
	Leave()
}

// InputPage reports whether it is capturing keystrokes (a text field has
// focus), in which case global shortcuts other than force quit are not
// applied.
type InputPage interface {
	CapturingInput() bool
}

// HiddenPage is reachable only through navigation, not the sidebar.
type HiddenPage interface {
	Hidden() bool
}
