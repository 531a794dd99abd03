package tui

import tea "github.com/charmbracelet/bubbletea"

// ViewContext provides read-only context to decks for rendering.
type ViewContext struct {
	ContentWidth  int
	ContentHeight int
	Needle        string
	DeckPaused    bool   // the deck's source is disabled
	DeckLastError string // last fetch error shown by the deck
	DeckLoading   bool   // nothing received yet
}

// Action identifies what a page wants the app to do.
type Action int

const (
	ActionNavigate Action = iota
	ActionSetStatus
)

// ActionMsg lets decks and commands talk to the app without holding it.
type ActionMsg struct {
	Action  Action
	Payload any
}

func actionMsg(a ActionMsg) tea.Cmd {
	return func() tea.Msg { return a }
}

// navigate returns a command requesting a page switch.
func navigate(pageID string, params any) tea.Cmd {
	return actionMsg(ActionMsg{Action: ActionNavigate, Payload: PageNav{PageID: pageID, Params: params}})
}

// setStatus returns a command that flashes text on the status line.
func setStatus(text string) tea.Cmd {
	return actionMsg(ActionMsg{Action: ActionSetStatus, Payload: text})
}
