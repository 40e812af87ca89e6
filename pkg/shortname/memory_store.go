package shortname

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Store. Records are returned in insertion order.
// Suitable for development and testing.
type MemoryStore struct {
	mu      sync.RWMutex
	order   []string
	records map[string]map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]map[string]string),
	}
}

func (s *MemoryStore) All(ctx context.Context, scope Scope) ([]Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entity, 0, len(s.order))
	for _, id := range s.order {
		rec := LoadRecord(id, s.records[id])
		if scope.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *MemoryStore) FindOther(ctx context.Context, scope Scope, field, value, excludeID string) (Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		fields := s.records[id]
		if fields[field] != value || (excludeID != "" && id == excludeID) {
			continue
		}
		rec := LoadRecord(id, fields)
		if scope.Matches(rec) {
			return rec, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) Update(ctx context.Context, e Entity, field, value string) error {
	if e == nil {
		return ErrNilEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fields, ok := s.records[e.ID()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, e.ID())
	}
	fields[field] = value
	e.Set(field, value)
	e.Commit(field)
	return nil
}

func (s *MemoryStore) Save(ctx context.Context, e Entity) error {
	if e == nil {
		return ErrNilEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[e.ID()]; !ok {
		s.order = append(s.order, e.ID())
	}
	s.records[e.ID()] = e.Fields()
	e.Commit()
	return nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
