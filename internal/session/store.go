package session

import (
	"sync"
	"time"
)

// Store keeps the sessions of the running process in memory
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return NewStoreWithClock(ttl, time.Now)
}

// NewStoreWithClock creates a store that reads the current time from now
func NewStoreWithClock(ttl time.Duration, now func() time.Time) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      now,
	}
}

// Get returns the session with id, creating it on first use
func (s *Store) Get(id string) *Session {
	now := s.now()

	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = newSession(id, now)
		s.sessions[id] = sess
	}
	s.mu.Unlock()

	sess.touch(now)
	return sess
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// RemoveExpired drops sessions idle for longer than the TTL and returns their ids
func (s *Store) RemoveExpired() []string {
	deadline := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []string
	for id, sess := range s.sessions {
		if sess.idleSince(deadline) {
			sess.close()
			delete(s.sessions, id)
			expired = append(expired, id)
		}
	}
	return expired
}
