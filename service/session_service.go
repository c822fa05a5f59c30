package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hackforge/policy-chatbot-be/types"
)

// SessionStore maps opaque tokens to classified uploaded documents.
// Entries are written once and never mutated.
type SessionStore interface {
	// Create stores a new session and returns its fresh token.
	Create(content string, classification types.Classification) string
	// Get returns the session for id, or false if it does not exist or
	// has expired.
	Get(id string) (*types.Session, bool)
}

type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]types.Session
	ttl      time.Duration
}

// NewSessionStore creates an in-memory session store. A ttl of 0 keeps
// sessions for the process lifetime.
func NewSessionStore(ttl time.Duration) SessionStore {
	return &sessionStore{
		sessions: make(map[string]types.Session),
		ttl:      ttl,
	}
}

func (s *sessionStore) Create(content string, classification types.Classification) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = types.Session{
		ID:             id,
		Content:        content,
		Classification: classification,
		CreatedAt:      time.Now(),
	}
	s.mu.Unlock()
	return id
}

func (s *sessionStore) Get(id string) (*types.Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && time.Since(session.CreatedAt) > s.ttl {
		// Lazy eviction keeps the map bounded when a TTL is set.
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, false
	}
	return &session, true
}
