package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"docpanel/internal/requests/models"
)

type request struct {
	senderID    string
	name        string
	requestedAt time.Time
}

// InMemory keeps the request log in a slice, for tests and local runs.
type InMemory struct {
	mu         sync.RWMutex
	requests   []request
	authorized map[string]struct{}
}

func NewInMemory() *InMemory {
	return &InMemory{authorized: make(map[string]struct{})}
}

// Record appends one request to the log.
func (s *InMemory) Record(senderID, name string, requestedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, request{senderID: senderID, name: name, requestedAt: requestedAt})
}

// Authorize marks a sender as actively authorized, excluding it from the
// pending listing.
func (s *InMemory) Authorize(senderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authorized[senderID] = struct{}{}
}

func (s *InMemory) PendingUnauthorized(_ context.Context) ([]models.PendingSender, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latest := make(map[string]request)
	for _, req := range s.requests {
		if _, ok := s.authorized[req.senderID]; ok {
			continue
		}
		if prev, ok := latest[req.senderID]; !ok || req.requestedAt.After(prev.requestedAt) {
			latest[req.senderID] = req
		}
	}

	pending := make([]request, 0, len(latest))
	for _, req := range latest {
		pending = append(pending, req)
	}
	sort.Slice(pending, func(i, j int) bool {
		if pending[i].requestedAt.Equal(pending[j].requestedAt) {
			return pending[i].senderID < pending[j].senderID
		}
		return pending[i].requestedAt.After(pending[j].requestedAt)
	})

	out := make([]models.PendingSender, 0, len(pending))
	for _, req := range pending {
		out = append(out, models.PendingSender{SenderID: req.senderID, Name: req.name})
	}
	return out, nil
}
