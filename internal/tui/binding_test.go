package tui

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/syncflow/dashboard/internal/poll"
)

func newTestBinding(t *testing.T, fetch poll.FetchFunc[string]) (*Binding[string], chan tea.Msg) {
	t.Helper()
	msgs := make(chan tea.Msg, 16)
	n := NewNotifier()
	n.AttachFunc(func(m tea.Msg) { msgs <- m })
	src := poll.New(poll.Config{Name: "words", Interval: time.Hour, ErrorMessage: "Failed to fetch words"}, fetch)
	return NewBinding(src, func(s string) string { return s }, n), msgs
}

func nextWords(t *testing.T, msgs chan tea.Msg) poll.Snapshot[string] {
	t.Helper()
	select {
	case m := <-msgs:
		s, ok := m.(poll.Snapshot[string])
		if !ok {
			t.Fatalf("unexpected message %T", m)
		}
		return s
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	return poll.Snapshot[string]{}
}

func TestBinding_AppliesSnapshotsInOrder(t *testing.T) {
	t.Parallel()

	b, msgs := newTestBinding(t, func(context.Context) poll.Result[string] {
		return poll.Collection([]string{"alpha", "beta", "gamma"})
	})
	if !b.Loading() {
		t.Fatal("binding should be loading before the first snapshot")
	}
	b.Start(context.Background())
	defer b.Stop()

	s := nextWords(t, msgs)
	if !b.Apply(s) {
		t.Fatal("first snapshot should apply")
	}
	if b.Apply(s) {
		t.Fatal("a snapshot must not apply twice")
	}
	if got := len(b.Items()); got != 3 {
		t.Fatalf("items = %d, want 3", got)
	}
	if b.Loading() {
		t.Fatal("binding should not be loading after a snapshot")
	}

	other := s
	other.Source = "other"
	other.Seq = s.Seq + 1
	other.Items = nil
	if b.Apply(other) {
		t.Fatal("snapshot from another source must be ignored")
	}

	b.SetNeedle("a")
	if got := len(b.Items()); got != 3 {
		t.Fatalf("needle 'a' matched %d, want 3", got)
	}
	b.SetNeedle("et")
	if got := b.Items(); len(got) != 1 || got[0] != "beta" {
		t.Fatalf("needle 'et' = %v, want [beta]", got)
	}
	if got := len(b.All()); got != 3 {
		t.Fatalf("All() = %d, want 3", got)
	}
}

func TestBinding_IgnoresSnapshotsAfterStop(t *testing.T) {
	t.Parallel()

	b, msgs := newTestBinding(t, func(context.Context) poll.Result[string] {
		return poll.Collection([]string{"one"})
	})
	b.Start(context.Background())
	s := nextWords(t, msgs)
	b.Stop()

	if b.Apply(s) {
		t.Fatal("snapshot queued before Stop must be ignored")
	}
	if len(b.Items()) != 0 {
		t.Fatal("items should stay empty")
	}
}

func TestBinding_IgnoresSnapshotsFromPreviousRun(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	b, msgs := newTestBinding(t, func(context.Context) poll.Result[string] {
		if calls.Add(1) == 1 {
			return poll.Collection([]string{"old"})
		}
		return poll.Collection([]string{"new"})
	})
	b.Start(context.Background())
	queued := nextWords(t, msgs)
	b.Stop()

	b.Start(context.Background())
	defer b.Stop()
	fresh := nextWords(t, msgs)

	if b.Apply(queued) {
		t.Fatal("snapshot queued before a restart must be ignored")
	}
	if !b.Apply(fresh) {
		t.Fatal("snapshot of the current run should apply")
	}
	if got := b.Items(); len(got) != 1 || got[0] != "new" {
		t.Fatalf("items = %v, want [new]", got)
	}
}

func TestBinding_FailureKeepsItemsAndReportsError(t *testing.T) {
	t.Parallel()

	var fail atomic.Bool
	b, msgs := newTestBinding(t, func(context.Context) poll.Result[string] {
		if fail.Load() {
			return poll.Failure[string](poll.FailureTransport, errors.New("connection refused"))
		}
		return poll.Collection([]string{"kept"})
	})
	b.Start(context.Background())
	defer b.Stop()
	b.Apply(nextWords(t, msgs))

	fail.Store(true)
	b.Source().Refresh()
	b.Apply(nextWords(t, msgs))

	if b.Err() == nil {
		t.Fatal("expected fetch error")
	}
	if got := b.Context(80, 20).DeckLastError; got != "Failed to fetch words" {
		t.Fatalf("DeckLastError = %q", got)
	}
	if got := b.Items(); len(got) != 1 || got[0] != "kept" {
		t.Fatalf("items = %v, want previous collection", got)
	}
}

func TestBinding_SetEnabledMarksDeckPaused(t *testing.T) {
	t.Parallel()

	b, _ := newTestBinding(t, func(context.Context) poll.Result[string] { return poll.Empty[string]() })
	b.SetEnabled(false)
	if b.Enabled() || b.Source().Enabled() {
		t.Fatal("binding and source should be disabled")
	}
	if !b.Context(80, 20).DeckPaused {
		t.Fatal("deck should render as paused")
	}
	if got := deckStatus(b.Context(80, 20)); got == "" {
		t.Fatal("paused deck should show a status")
	}
}
