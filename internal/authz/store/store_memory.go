package store

import (
	"context"
	"sort"
	"sync"

	"docpanel/internal/authz/models"
	"docpanel/pkg/platform/sentinel"
)

// InMemory keeps authorization records in a map guarded by a RWMutex.
type InMemory struct {
	mu      sync.RWMutex
	records map[string]*models.Authorization
}

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[string]*models.Authorization)}
}

func (s *InMemory) Find(_ context.Context, senderID string) (*models.Authorization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[senderID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (s *InMemory) Save(_ context.Context, auth *models.Authorization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *auth
	s.records[auth.SenderID] = &copied
	return nil
}

func (s *InMemory) ListAuthorized(_ context.Context) ([]models.Authorization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Authorization
	for _, record := range s.records {
		if record.Authorized {
			out = append(out, *record)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AuthorizedAt.Equal(out[j].AuthorizedAt) {
			return out[i].SenderID < out[j].SenderID
		}
		return out[i].AuthorizedAt.Before(out[j].AuthorizedAt)
	})
	return out, nil
}
