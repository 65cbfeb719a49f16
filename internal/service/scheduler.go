package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Scheduler runs delayed callbacks guarded by a round session ID. A timer
// scheduled for a session that has since ended (player left the round,
// question advanced, round completed) fires as a no-op instead of mutating
// a round that is no longer current.
type Scheduler struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{active: make(map[string]struct{})}
}

// Begin registers a new session and returns its ID
func (s *Scheduler) Begin() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.active[id] = struct{}{}
	s.mu.Unlock()
	return id
}

// End invalidates a session; pending timers for it will no-op
func (s *Scheduler) End(id string) {
	s.mu.Lock()
	delete(s.active, id)
	s.mu.Unlock()
}

// Alive reports whether a session is still current
func (s *Scheduler) Alive(id string) bool {
	s.mu.Lock()
	_, ok := s.active[id]
	s.mu.Unlock()
	return ok
}

// After schedules fn to run after d, unless the session ends first. The
// returned timer may be stopped early, though stopping is optional: the
// session guard alone makes a late fire harmless.
func (s *Scheduler) After(sessionID string, d time.Duration, fn func()) *time.Timer {
	return time.AfterFunc(d, func() {
		if !s.Alive(sessionID) {
			return
		}
		fn()
	})
}
