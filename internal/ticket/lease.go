package ticket

import "sync"

// closeLease is a per-channel advisory lease. Only one Close may be in
// flight per channel; concurrent attempts are rejected rather than queued.
type closeLease struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

func newCloseLease() *closeLease {
	return &closeLease{inflight: make(map[string]struct{})}
}

// Acquire marks the channel as closing. Returns false when a close is
// already in flight.
func (l *closeLease) Acquire(channelID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.inflight[channelID]; busy {
		return false
	}
	l.inflight[channelID] = struct{}{}
	return true
}

// Release clears the marker on completion, success or failure.
func (l *closeLease) Release(channelID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.inflight, channelID)
}
