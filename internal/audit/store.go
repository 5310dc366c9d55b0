package audit

import (
	"context"
	"sync"
)

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	List(ctx context.Context) ([]Event, error)
}

// InMemoryStore keeps the most recent events up to a fixed capacity.
type InMemoryStore struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
}

// NewInMemoryStore creates a store retaining at most capacity events
// (unbounded when capacity <= 0).
func NewInMemoryStore(capacity int) *InMemoryStore {
	return &InMemoryStore{capacity: capacity}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if s.capacity > 0 && len(s.events) > s.capacity {
		s.events = append([]Event(nil), s.events[len(s.events)-s.capacity:]...)
	}
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events...), nil
}
