package calendar

import (
	"slices"
	"sync"
)

// EventStore owns the master event list for the signed-in user. It is the
// source of truth before expansion; the expanded occurrence set is a
// disposable cache recomputed from it and never written back. Every mutation
// is applied atomically under the lock; when operations race (e.g. a create
// and its triggered refetch), the last write wins.
type EventStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewEventStore() *EventStore {
	return &EventStore{}
}

// ReplaceAll swaps in a fresh master list, typically from a backend fetch.
func (s *EventStore) ReplaceAll(events []Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = slices.Clone(events)
}

// Append adds a server-confirmed event to the list.
func (s *EventStore) Append(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// Update replaces the master with the same ID. Unknown IDs are a no-op.
func (s *EventStore) Update(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID == ev.ID {
			s.events[i] = ev
		}
	}
}

// RemoveByID drops the master with the given ID.
func (s *EventStore) RemoveByID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.events[:0]
	for _, ev := range s.events {
		if ev.ID != id {
			kept = append(kept, ev)
		}
	}
	s.events = kept
}

// RemoveByType drops every master whose EventType equals eventType exactly.
func (s *EventStore) RemoveByType(eventType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.events[:0]
	for _, ev := range s.events {
		if ev.EventType != eventType {
			kept = append(kept, ev)
		}
	}
	s.events = kept
}

// Snapshot returns a copy of the current master list, safe to expand or
// iterate without holding the lock.
func (s *EventStore) Snapshot() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.events)
}

// Len reports the current master count.
func (s *EventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
