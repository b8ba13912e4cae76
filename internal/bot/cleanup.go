package bot

import (
	"sync"
	"time"
)

// sweeper runs one cancellable delayed callback per owner. Scheduling
// replaces any pending callback; starting a new exchange cancels the old
// sweep so it can never touch a newer conversation.
type sweeper struct {
	mu     sync.Mutex
	timers map[int64]*time.Timer
}

func newSweeper() *sweeper {
	return &sweeper{timers: make(map[int64]*time.Timer)}
}

// Schedule arms fn to run after delay, replacing any pending callback for
// the owner.
func (s *sweeper) Schedule(ownerID int64, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[ownerID]; ok {
		t.Stop()
	}
	s.timers[ownerID] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, ownerID)
		s.mu.Unlock()
		fn()
	})
}

// Cancel stops the owner's pending callback, if any.
func (s *sweeper) Cancel(ownerID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[ownerID]; ok {
		t.Stop()
		delete(s.timers, ownerID)
	}
}
