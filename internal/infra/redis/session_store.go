package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"mcq-quiz-service/internal/app"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Notes:
//   - Session state itself stays in the local map; Redis holds a liveness key
//     per session with a TTL.
//   - The TTL doubles as the eviction policy: once the key expires, Get treats
//     the session as unknown and drops the local copy, so abandoned sessions
//     do not accumulate forever.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration

	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) Put(session *app.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID()] = session
	_ = s.client.Set(context.Background(), s.key(session.ID()), "1", s.ttl).Err()
}

func (s *SessionStore) Get(id string) (*app.Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	exists, err := s.client.Exists(context.Background(), s.key(id)).Result()
	if err == nil && exists == 0 {
		// Liveness key expired: evict the local copy.
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, false
	}
	// Activity keeps the session alive.
	if s.ttl > 0 {
		_ = s.client.Expire(context.Background(), s.key(id), s.ttl).Err()
	}
	return session, true
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	_ = s.client.Del(context.Background(), s.key(id)).Err()
}

func (s *SessionStore) key(id string) string {
	return "quiz:session:" + id
}
