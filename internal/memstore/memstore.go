// Package memstore provides the in-memory event snapshot holder used by the
// binary and tests. It owns identity assignment on create; the engine
// packages never mint event ids themselves. Nothing here is durable: the
// store exists to hand out ordered snapshots of the current collection.
package memstore

import (
	"context"
	"errors"
	"sync"

	"github.com/example/personal-calendar/internal/event"
)

// ErrNotFound is returned when no event with the requested id exists.
var ErrNotFound = errors.New("memstore: event not found")

// ErrDuplicateID is returned when a create collides with a stored id.
var ErrDuplicateID = errors.New("memstore: duplicate event id")

// Store is a mutex-guarded, insertion-ordered event collection.
type Store struct {
	mu          sync.RWMutex
	idGenerator func() string
	events      map[string]event.Event
	order       []string
}

// New constructs an empty store. The idGenerator assigns identities to
// created events; it must yield unique values.
func New(idGenerator func() string) *Store {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	return &Store{
		idGenerator: idGenerator,
		events:      make(map[string]event.Event),
	}
}

// CreateEvent stores the candidate, assigning an id when it carries none.
func (s *Store) CreateEvent(ctx context.Context, candidate event.Event) (event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if candidate.ID == "" {
		candidate.ID = s.idGenerator()
	}
	if _, exists := s.events[candidate.ID]; exists {
		return event.Event{}, ErrDuplicateID
	}

	s.events[candidate.ID] = candidate
	s.order = append(s.order, candidate.ID)
	return candidate, nil
}

// GetEvent returns the stored event with the given id.
func (s *Store) GetEvent(ctx context.Context, id string) (event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.events[id]
	if !ok {
		return event.Event{}, ErrNotFound
	}
	return stored, nil
}

// UpdateEvent replaces the stored record with the same id.
func (s *Store) UpdateEvent(ctx context.Context, updated event.Event) (event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[updated.ID]; !ok {
		return event.Event{}, ErrNotFound
	}
	s.events[updated.ID] = updated
	return updated, nil
}

// DeleteEvent removes the stored record with the given id.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return ErrNotFound
	}
	delete(s.events, id)
	for i, storedID := range s.order {
		if storedID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// ListEvents returns a snapshot of the collection in insertion order.
func (s *Store) ListEvents(ctx context.Context) ([]event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.order) == 0 {
		return nil, nil
	}
	snapshot := make([]event.Event, 0, len(s.order))
	for _, id := range s.order {
		snapshot = append(snapshot, s.events[id])
	}
	return snapshot, nil
}

// Len returns the number of stored events.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
