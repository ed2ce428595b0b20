package identity

import (
	"context"
	"sync"

	"teamup/pkg/platform/sentinel"
)

// InMemoryStore keeps session identities in a mutex-guarded map. Used in unit
// tests and in dev mode when Redis is not configured. Identities held here do
// not survive a process restart.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]string
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]string)}
}

func (s *InMemoryStore) Get(_ context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	phone, ok := s.sessions[sessionID]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	return phone, nil
}

func (s *InMemoryStore) Put(_ context.Context, sessionID, canonicalPhone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionID] = canonicalPhone
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}
