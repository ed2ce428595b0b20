package audit

import (
	"context"
	"sync"
)

// InMemoryStore collects events in memory. Dev-mode sink and test double.
type InMemoryStore struct {
	mu     sync.Mutex
	events []Event
}

// NewInMemoryStore constructs an empty in-memory audit sink.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event)
	return nil
}

// Events returns a snapshot of everything appended so far.
func (s *InMemoryStore) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
