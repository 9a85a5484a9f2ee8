package store

import (
	"context"
	"sort"
	"sync"

	"docpanel/internal/stats/models"
)

// InMemory keeps counters in a map, for tests and local runs.
type InMemory struct {
	mu     sync.RWMutex
	counts map[string]models.SenderCount
}

func NewInMemory() *InMemory {
	return &InMemory{counts: make(map[string]models.SenderCount)}
}

// Record sets the document count for a sender.
func (s *InMemory) Record(senderID, name string, documents int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[senderID] = models.SenderCount{SenderID: senderID, Name: name, Documents: documents}
}

func (s *InMemory) Totals(_ context.Context) (models.Totals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := models.Totals{Senders: int64(len(s.counts))}
	for _, count := range s.counts {
		totals.Documents += count.Documents
	}
	return totals, nil
}

func (s *InMemory) Top(_ context.Context, limit int) ([]models.SenderCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make([]models.SenderCount, 0, len(s.counts))
	for _, count := range s.counts {
		counts = append(counts, count)
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Documents != counts[j].Documents {
			return counts[i].Documents > counts[j].Documents
		}
		return counts[i].SenderID < counts[j].SenderID
	})
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	return counts, nil
}
