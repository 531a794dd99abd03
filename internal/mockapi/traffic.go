package mockapi

import (
	"math/rand"
	"sync"
	"time"

	"github.com/syncflow/dashboard/internal/model"
)

// streams holds one rolling buffer of generated network logs per key.
// Every read appends a fresh batch so pollers observe a moving stream.
type streams struct {
	mu      sync.Mutex
	traffic Traffic
	rng     *rand.Rand
	now     func() time.Time
	buffers map[string][]model.NetworkLog
}

func newStreams(t Traffic, seed int64, now func() time.Time) *streams {
	return &streams{
		traffic: t,
		rng:     rand.New(rand.NewSource(seed)),
		now:     now,
		buffers: make(map[string][]model.NetworkLog),
	}
}

// advance appends a batch to the stream for key and returns a copy of it.
// local is the address the stream is observed from.
func (s *streams) advance(key, local string) []model.NetworkLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := s.buffers[key]
	ts := s.now().UTC()
	for i := 0; i < s.traffic.Batch; i++ {
		buf = append(buf, s.entry(local, ts))
	}
	if over := len(buf) - s.traffic.History; over > 0 {
		buf = append([]model.NetworkLog(nil), buf[over:]...)
	}
	s.buffers[key] = buf

	out := make([]model.NetworkLog, len(buf))
	copy(out, buf)
	return out
}

func (s *streams) entry(local string, ts time.Time) model.NetworkLog {
	t := s.traffic
	peer := t.Peers[s.rng.Intn(len(t.Peers))]
	l := model.NetworkLog{
		Time:     ts.Format(time.RFC3339Nano),
		Severity: t.Severities[s.rng.Intn(len(t.Severities))],
		Port:     t.Ports[s.rng.Intn(len(t.Ports))],
		Protocol: t.Protocols[s.rng.Intn(len(t.Protocols))],
	}
	if s.rng.Intn(2) == 0 {
		l.Type, l.Source, l.Destination = model.Incoming, peer, local
	} else {
		l.Type, l.Source, l.Destination = model.Outgoing, local, peer
	}
	return l
}
