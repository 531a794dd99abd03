package tui

import (
	"time"

	"github.com/syncflow/dashboard/internal/poll"
)

// DeckState tracks per-source receive/pause/error state as seen by a deck.
type DeckState struct {
	Source          string
	Interval        time.Duration
	Paused          bool
	Received        bool
	LastError       string
	LastErrorAt     time.Time
	LastTickOK      bool
	LastTickAt      time.Time
	ConsecutiveErrs int
}

// observe folds one published snapshot into the state.
func (s *DeckState) observe(err *poll.FetchError, at time.Time) {
	s.Received = true
	s.LastTickAt = at
	if err != nil {
		s.LastTickOK = false
		s.LastError = err.Error()
		s.LastErrorAt = at
		s.ConsecutiveErrs++
		return
	}
	s.LastTickOK = true
	s.LastError = ""
	s.ConsecutiveErrs = 0
}
