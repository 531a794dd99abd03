package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Notifier forwards messages from background goroutines (poll sources) into
// the running Bubble Tea program. Messages sent before Attach are dropped;
// every source republishes on its next cycle.
type Notifier struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

// NewNotifier returns a detached notifier.
func NewNotifier() *Notifier { return &Notifier{} }

// Attach routes messages to p.
func (n *Notifier) Attach(p *tea.Program) {
	n.AttachFunc(p.Send)
}

// AttachFunc routes messages to fn.
func (n *Notifier) AttachFunc(fn func(tea.Msg)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.send = fn
}

// Send delivers msg if a program is attached.
func (n *Notifier) Send(msg tea.Msg) {
	if n == nil {
		return
	}
	n.mu.RLock()
	send := n.send
	n.mu.RUnlock()
	if send != nil {
		send(msg)
	}
}
