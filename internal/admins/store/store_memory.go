package store

import (
	"context"
	"sort"
	"sync"

	"docpanel/internal/admins/models"
	"docpanel/pkg/platform/sentinel"
)

// InMemory keeps administrators in a map guarded by a RWMutex. It backs unit
// tests and single-process deployments.
type InMemory struct {
	mu     sync.RWMutex
	admins map[string]*models.Administrator
}

func NewInMemory() *InMemory {
	return &InMemory{admins: make(map[string]*models.Administrator)}
}

func (s *InMemory) Get(_ context.Context, senderID string) (*models.Administrator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	admin, ok := s.admins[senderID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *admin
	return &copied, nil
}

func (s *InMemory) List(_ context.Context) ([]models.Administrator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Administrator, 0, len(s.admins))
	for _, admin := range s.admins {
		out = append(out, *admin)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].SenderID < out[j].SenderID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemory) Add(_ context.Context, admin *models.Administrator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.admins[admin.SenderID]; exists {
		return sentinel.ErrConflict
	}
	copied := *admin
	s.admins[admin.SenderID] = &copied
	return nil
}

func (s *InMemory) Remove(_ context.Context, senderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.admins[senderID]; !exists {
		return sentinel.ErrNotFound
	}
	delete(s.admins, senderID)
	return nil
}
