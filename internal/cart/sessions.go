package cart

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type session struct {
	store    *Store
	lastSeen time.Time
}

// Sessions keeps one in-memory Store per cart session id. Carts are not
// persisted; a store idle for longer than the TTL is dropped.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*session
	reducer  Reducer
	ttl      time.Duration
	now      func() time.Time
	log      *zap.Logger
}

func NewSessions(reducer Reducer, ttl time.Duration, log *zap.Logger) *Sessions {
	return &Sessions{
		sessions: make(map[string]*session),
		reducer:  reducer,
		ttl:      ttl,
		now:      time.Now,
		log:      log,
	}
}

// Get returns the store for id, creating an empty cart on first use.
func (s *Sessions) Get(id string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{store: NewStore(s.reducer)}
		s.sessions[id] = sess
	}
	sess.lastSeen = s.now()
	return sess.store
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than the TTL and reports how many it dropped.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps idle sessions every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.log.Debug("evicted idle carts", zap.Int("count", n))
			}
		case <-ctx.Done():
			return
		}
	}
}
