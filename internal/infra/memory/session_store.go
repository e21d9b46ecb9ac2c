package memory

import (
	"sync"
	"time"

	"mcq-quiz-service/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
// With a positive TTL, sessions idle for longer than the TTL are evicted
// lazily on access, which bounds growth in long-running processes.
type SessionStore struct {
	ttl   time.Duration
	clock func() time.Time

	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	session  *app.Session
	lastSeen time.Time
}

func NewSessionStore() *SessionStore {
	return NewSessionStoreWithTTL(0)
}

// NewSessionStoreWithTTL builds a store that evicts sessions idle longer than
// ttl. A non-positive ttl disables eviction.
func NewSessionStoreWithTTL(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		clock:    time.Now,
		sessions: make(map[string]*sessionEntry),
	}
}

func (s *SessionStore) Put(session *app.Session) {
	now := s.clock()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(now)
	s.sessions[session.ID()] = &sessionEntry{session: session, lastSeen: now}
}

func (s *SessionStore) Get(id string) (*app.Session, bool) {
	now := s.clock()
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.expired(entry, now) {
		delete(s.sessions, id)
		return nil, false
	}
	entry.lastSeen = now
	return entry.session, true
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *SessionStore) expired(entry *sessionEntry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(entry.lastSeen) > s.ttl
}

func (s *SessionStore) sweepLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, entry := range s.sessions {
		if s.expired(entry, now) {
			delete(s.sessions, id)
		}
	}
}
