package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"pressroom/internal/domain/entity"
)

type session struct {
	user      entity.User
	expiresAt time.Time
}

// SessionStore keeps server-side sessions in memory, keyed by an opaque
// random ID handed to the client as a cookie value.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]session
	ttl      time.Duration
	clock    Clock
}

func NewSessionStore(ttl time.Duration, clock Clock) *SessionStore {
	if clock == nil {
		clock = RealClock{}
	}
	return &SessionStore{
		sessions: make(map[string]session),
		ttl:      ttl,
		clock:    clock,
	}
}

// Create opens a session for the user and returns its ID.
func (s *SessionStore) Create(user entity.User) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = session{
		user:      user,
		expiresAt: s.clock.Now().Add(s.ttl),
	}
	return id
}

// Resolve returns the user behind a session ID, or false when the session
// is unknown or expired.
func (s *SessionStore) Resolve(id string) (entity.User, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || s.clock.Now().After(sess.expiresAt) {
		return entity.User{}, false
	}
	return sess.user, true
}

// Destroy removes a session. Unknown IDs are a no-op.
func (s *SessionStore) Destroy(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Purge drops expired sessions and returns how many were removed.
func (s *SessionStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	removed := 0
	for id, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
