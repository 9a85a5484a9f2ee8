package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"docpanel/internal/pending/models"
	"docpanel/pkg/platform/sentinel"
)

// InMemory keeps pending identifiers in a map guarded by a RWMutex.
type InMemory struct {
	mu      sync.RWMutex
	records map[string]*models.PendingIdentifier
}

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[string]*models.PendingIdentifier)}
}

func (s *InMemory) Add(_ context.Context, record *models.PendingIdentifier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[record.Identifier]; exists {
		return sentinel.ErrConflict
	}
	copied := *record
	s.records[record.Identifier] = &copied
	return nil
}

func (s *InMemory) List(_ context.Context) ([]models.PendingIdentifier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.PendingIdentifier, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, *record)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RequestedAt.Equal(out[j].RequestedAt) {
			return out[i].Identifier < out[j].Identifier
		}
		return out[i].RequestedAt.Before(out[j].RequestedAt)
	})
	return out, nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func (s *InMemory) Remove(_ context.Context, identifier string) (*models.PendingIdentifier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[identifier]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	delete(s.records, identifier)
	copied := *record
	return &copied, nil
}

func (s *InMemory) DeleteOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for identifier, record := range s.records {
		if record.RequestedAt.Before(cutoff) {
			delete(s.records, identifier)
			removed++
		}
	}
	return removed, nil
}
