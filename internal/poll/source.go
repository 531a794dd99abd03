// Package poll keeps a local collection in sync with a remote source of truth
// by fetching it on a fixed interval and republishing the result.
package poll

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/syncflow/dashboard/internal/logging"
	"github.com/syncflow/dashboard/internal/projection"
)

// FetchFunc retrieves one collection. It should honour ctx cancellation.
type FetchFunc[T any] func(ctx context.Context) Result[T]

// Subscriber receives every published snapshot, one at a time, in the order
// cycles were applied. Items must be treated as read-only.
type Subscriber[T any] func(Snapshot[T])

// Snapshot is the published state of a source.
type Snapshot[T any] struct {
	Source string
	Items  []T
	Err    *FetchError // nil after a successful cycle
	Kind   Kind
	Seq    uint64 // cycle that produced this snapshot, 0 = seed
	Gen    uint64 // Start call the cycle belonged to
	At     time.Time
}

// State describes a source's lifecycle and error bookkeeping.
type State struct {
	Enabled         bool
	Running         bool
	Generation      uint64
	Interval        time.Duration
	InFlight        int
	LastError       *FetchError
	ConsecutiveErrs int
	Dispatched      uint64
	Applied         uint64
}

// Config configures a Source.
type Config struct {
	Name     string
	Interval time.Duration
	// Tail keeps only the last Tail records of every published collection.
	// Zero keeps everything.
	Tail int
	// ErrorMessage is shown for transport failures. Defaults to
	// "Failed to fetch <Name>".
	ErrorMessage string
	Logger       *logrus.Entry
}

// Source polls fetch every Interval and publishes the result, replacing the
// previous collection. Each dispatched cycle gets a sequence number and only
// the most recently dispatched cycle may publish. A tick that finds that
// cycle still unresolved is skipped, so a backend slower than the interval
// still gets every response published. Responses that arrive after Stop or
// while the source is disabled are discarded.
type Source[T any] struct {
	name     string
	interval time.Duration
	tail     int
	errMsg   string
	fetch    FetchFunc[T]
	log      *logrus.Entry
	now      func() time.Time

	// pubMu serializes apply+notify so the subscriber never runs
	// concurrently and sees snapshots in seq order.
	pubMu sync.Mutex

	mu         sync.Mutex
	subscriber Subscriber[T]
	enabled    bool
	running    bool
	generation uint64
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
	dispatched uint64
	applied    uint64
	pending    bool // cycle dispatched is unresolved
	inFlight   int
	consecErrs int
	snap       Snapshot[T]
}

// New creates a stopped, enabled source.
func New[T any](cfg Config, fetch FetchFunc[T]) *Source[T] {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.ErrorMessage == "" {
		cfg.ErrorMessage = "Failed to fetch " + cfg.Name
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewLogger("poll")
	}
	return &Source[T]{
		name:     cfg.Name,
		interval: cfg.Interval,
		tail:     cfg.Tail,
		errMsg:   cfg.ErrorMessage,
		fetch:    fetch,
		log:      cfg.Logger.WithField("source", cfg.Name),
		now:      time.Now,
		enabled:  true,
		snap:     Snapshot[T]{Source: cfg.Name, Items: []T{}},
	}
}

// Name returns the source name.
func (s *Source[T]) Name() string { return s.name }

// Subscribe sets the subscriber notified on every publish.
func (s *Source[T]) Subscribe(fn Subscriber[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscriber = fn
}

// Seed sets the collection published before the first cycle completes.
func (s *Source[T]) Seed(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Items = projection.Tail(items, s.tail)
	s.snap.Kind = KindCollection
	if len(s.snap.Items) == 0 {
		s.snap.Kind = KindEmpty
	}
}

// Start runs a cycle immediately and then one every interval until Stop is
// called or ctx is done. Calling Start on a running source does nothing.
func (s *Source[T]) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.running = true
	s.pending = false
	s.generation++
	gen := s.generation
	s.ctx = ctx
	s.cancel = cancel
	done := make(chan struct{})
	s.done = done
	s.mu.Unlock()

	s.log.WithField("interval", s.interval).Debug("poller started")
	go s.loop(ctx, gen, done)
}

// Stop cancels the schedule and any in-flight fetch. Responses that arrive
// afterwards never reach the published state.
func (s *Source[T]) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done
	s.log.Debug("poller stopped")
}

// SetEnabled pauses or resumes fetching without touching the schedule.
func (s *Source[T]) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
}

// Enabled reports whether cycles are currently dispatched.
func (s *Source[T]) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Refresh dispatches a cycle now, outside the regular schedule.
func (s *Source[T]) Refresh() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	ctx, gen := s.ctx, s.generation
	s.mu.Unlock()
	s.dispatch(ctx, gen, false)
}

// Snapshot returns the current published state.
func (s *Source[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// State returns the lifecycle bookkeeping of the source.
func (s *Source[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Enabled:         s.enabled,
		Running:         s.running,
		Generation:      s.generation,
		Interval:        s.interval,
		InFlight:        s.inFlight,
		LastError:       s.snap.Err,
		ConsecutiveErrs: s.consecErrs,
		Dispatched:      s.dispatched,
		Applied:         s.applied,
	}
}

func (s *Source[T]) loop(ctx context.Context, gen uint64, done chan struct{}) {
	defer close(done)

	s.dispatch(ctx, gen, false)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.dispatch(ctx, gen, true)
		}
	}
}

// dispatch starts one cycle unless the source is disabled or gen is stale.
// A scheduled dispatch also waits for the latest cycle to resolve; Refresh
// supersedes it instead. The fetch runs on its own goroutine so a slow
// response never delays the schedule.
func (s *Source[T]) dispatch(ctx context.Context, gen uint64, scheduled bool) {
	s.mu.Lock()
	if !s.running || gen != s.generation || !s.enabled {
		s.mu.Unlock()
		return
	}
	if scheduled && s.pending {
		seq := s.dispatched
		s.mu.Unlock()
		s.log.WithField("seq", seq).Trace("tick skipped, cycle still in flight")
		return
	}
	s.dispatched++
	seq := s.dispatched
	s.pending = true
	s.inFlight++
	s.mu.Unlock()

	go func() {
		res := s.fetch(ctx)
		s.apply(gen, seq, res)
	}()
}

// apply publishes res unless it is stale. It reports whether the snapshot
// changed.
func (s *Source[T]) apply(gen, seq uint64, res Result[T]) bool {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	s.inFlight--
	if seq == s.dispatched {
		s.pending = false
	}
	switch {
	case !s.running || gen != s.generation:
		s.mu.Unlock()
		s.log.WithField("seq", seq).Debug("discarding response after stop")
		return false
	case !s.enabled:
		s.mu.Unlock()
		s.log.WithField("seq", seq).Debug("discarding response while disabled")
		return false
	case seq != s.dispatched:
		latest := s.dispatched
		s.mu.Unlock()
		s.log.WithFields(logrus.Fields{"seq": seq, "dispatched": latest}).Debug("discarding superseded response")
		return false
	}

	if res.Kind == KindFailure && res.Reason == FailureNone {
		res.Reason = FailureTransport
	}

	s.applied = seq
	s.snap.Seq = seq
	s.snap.Gen = gen
	s.snap.Kind = res.Kind
	s.snap.At = s.now()

	switch res.Kind {
	case KindCollection:
		s.snap.Items = projection.Tail(res.Items, s.tail)
		s.snap.Err = nil
		s.consecErrs = 0
	case KindEmpty:
		s.snap.Items = []T{}
		s.snap.Err = nil
		s.consecErrs = 0
	case KindFailure:
		fe := s.fetchError(res)
		if res.Reason == FailureShape {
			s.snap.Items = []T{}
		}
		s.snap.Err = fe
		s.consecErrs++
		s.log.WithFields(logrus.Fields{
			"seq":    seq,
			"reason": res.Reason.String(),
			"streak": s.consecErrs,
		}).WithError(res.Err).Warn("fetch failed")
	}

	snap := s.snap
	sub := s.subscriber
	s.mu.Unlock()

	if sub != nil {
		sub(snap)
	}
	return true
}

func (s *Source[T]) fetchError(res Result[T]) *FetchError {
	msg := s.errMsg
	if res.Reason == FailureShape {
		msg = "Unexpected " + s.name + " data format"
	}
	return &FetchError{
		Source:  s.name,
		Reason:  res.Reason,
		Message: msg,
		Err:     res.Err,
	}
}
