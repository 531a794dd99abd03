package tui

import (
	"context"

	"github.com/syncflow/dashboard/internal/poll"
	"github.com/syncflow/dashboard/internal/projection"
)

// Binding connects a poll source to a deck: published snapshots arrive as
// Bubble Tea messages, are applied on the event loop and projected through
// the current search needle.
type Binding[T any] struct {
	src   *poll.Source[T]
	proj  *projection.Projection[T]
	state DeckState
	err   *poll.FetchError
	seq   uint64
}

// NewBinding subscribes to src and forwards its snapshots through n. A nil
// field disables filtering.
func NewBinding[T any](src *poll.Source[T], field projection.Field[T], n *Notifier) *Binding[T] {
	if field == nil {
		field = func(T) string { return "" }
	}
	b := &Binding[T]{
		src:  src,
		proj: projection.New(field),
		state: DeckState{
			Source:   src.Name(),
			Interval: src.State().Interval,
		},
	}
	src.Subscribe(func(s poll.Snapshot[T]) { n.Send(s) })

	seed := src.Snapshot()
	if len(seed.Items) > 0 {
		b.proj.SetItems(seed.Items)
	}
	return b
}

// Start begins polling.
func (b *Binding[T]) Start(ctx context.Context) {
	b.src.Start(ctx)
}

// Stop ends polling. Snapshots already queued are ignored by Apply.
func (b *Binding[T]) Stop() {
	b.src.Stop()
}

// Source returns the underlying source.
func (b *Binding[T]) Source() *poll.Source[T] { return b.src }

// Apply folds msg into the binding if it came from this binding's source,
// belongs to the source's current run and is newer than what is shown. It
// reports whether the msg was used.
func (b *Binding[T]) Apply(msg poll.Snapshot[T]) bool {
	if msg.Source != b.src.Name() || msg.Seq <= b.seq {
		return false
	}
	if st := b.src.State(); !st.Running || msg.Gen != st.Generation {
		return false
	}
	b.seq = msg.Seq
	b.err = msg.Err
	b.proj.SetItems(msg.Items)
	b.state.observe(msg.Err, msg.At)
	return true
}

// SetEnabled pauses or resumes the source.
func (b *Binding[T]) SetEnabled(enabled bool) {
	b.src.SetEnabled(enabled)
	b.state.Paused = !enabled
}

// Enabled reports whether the source is fetching.
func (b *Binding[T]) Enabled() bool { return !b.state.Paused }

// SetNeedle changes the search text.
func (b *Binding[T]) SetNeedle(needle string) { b.proj.SetNeedle(needle) }

// Needle returns the search text.
func (b *Binding[T]) Needle() string { return b.proj.Needle() }

// Items returns the projected collection.
func (b *Binding[T]) Items() []T { return b.proj.View() }

// All returns the last published collection, unfiltered.
func (b *Binding[T]) All() []T { return b.proj.Items() }

// Err returns the last fetch error, or nil.
func (b *Binding[T]) Err() *poll.FetchError { return b.err }

// Loading reports whether nothing has been published yet.
func (b *Binding[T]) Loading() bool {
	return !b.state.Received && len(b.proj.Items()) == 0
}

// State returns the deck state.
func (b *Binding[T]) State() DeckState { return b.state }

// Context returns a ViewContext for rendering the bound deck.
func (b *Binding[T]) Context(width, height int) ViewContext {
	return ViewContext{
		ContentWidth:  width,
		ContentHeight: height,
		Needle:        b.proj.Needle(),
		DeckPaused:    b.state.Paused,
		DeckLastError: b.state.LastError,
		DeckLoading:   b.Loading(),
	}
}
