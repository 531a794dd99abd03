package tui

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"

	"github.com/syncflow/dashboard/internal/api"
	"github.com/syncflow/dashboard/internal/mockapi"
	"github.com/syncflow/dashboard/internal/poll"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// harness wires pages to an in-process mock API and captures everything the
// notifier would have sent to the program.
type harness struct {
	deps    Deps
	msgs    chan tea.Msg
	pending []tea.Msg
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fx, err := mockapi.DefaultFixtures()
	if err != nil {
		t.Fatalf("DefaultFixtures: %v", err)
	}
	ts := httptest.NewServer(mockapi.NewServer("", fx, mockapi.WithSeed(3)).Handler())
	t.Cleanup(ts.Close)

	client, err := api.New(ts.URL, 2*time.Second)
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h := &harness{msgs: make(chan tea.Msg, 256)}
	notifier := NewNotifier()
	notifier.AttachFunc(func(msg tea.Msg) {
		select {
		case h.msgs <- msg:
		default:
		}
	})
	h.deps = Deps{
		Ctx:      ctx,
		API:      client,
		Notifier: notifier,
		// Long intervals: tests drive refreshes explicitly.
		Settings: Settings{StreamInterval: time.Hour, InventoryInterval: time.Hour, TailWindow: 100},
	}
	return h
}

// waitSnapshot returns the next snapshot published by the named source.
// Other messages are kept for later calls.
func waitSnapshot[T any](t *testing.T, h *harness, source string) poll.Snapshot[T] {
	t.Helper()
	match := func(msg tea.Msg) (poll.Snapshot[T], bool) {
		s, ok := msg.(poll.Snapshot[T])
		return s, ok && s.Source == source
	}
	for i, msg := range h.pending {
		if s, ok := match(msg); ok {
			h.pending = append(h.pending[:i], h.pending[i+1:]...)
			return s
		}
	}
	deadline := time.After(5 * time.Second)
	for {
		select {
		case msg := <-h.msgs:
			if s, ok := match(msg); ok {
				return s
			}
			h.pending = append(h.pending, msg)
		case <-deadline:
			t.Fatalf("timed out waiting for %q snapshot", source)
		}
	}
}

// runCmd executes cmd and flattens batches into their messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(p Page, s string) {
	for _, r := range s {
		p.Update(keyRunes(string(r)))
	}
}
