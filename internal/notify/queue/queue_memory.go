package queue

import (
	"context"
	"sync"

	"docpanel/internal/notify/models"
	"docpanel/pkg/requestcontext"
)

// InMemory is the outbox used by unit tests and single-process deployments.
type InMemory struct {
	mu       sync.Mutex
	nextSeq  int64
	messages []models.Message
	seen     map[dedupeKey]struct{}
}

type dedupeKey struct {
	correlationID string
	recipient     string
}

func NewInMemory() *InMemory {
	return &InMemory{nextSeq: 1, seen: make(map[dedupeKey]struct{})}
}

func (q *InMemory) Enqueue(_ context.Context, msg *models.Message) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	key := dedupeKey{correlationID: msg.CorrelationID, recipient: msg.Recipient}
	if _, dup := q.seen[key]; dup {
		return nil
	}
	q.seen[key] = struct{}{}

	msg.Seq = q.nextSeq
	q.nextSeq++
	q.messages = append(q.messages, *msg)
	return nil
}

func (q *InMemory) NextBatch(_ context.Context, limit int) ([]models.Message, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var out []models.Message
	for _, msg := range q.messages {
		if msg.RelayedAt == nil {
			out = append(out, msg)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (q *InMemory) MarkRelayed(ctx context.Context, seq int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i := range q.messages {
		if q.messages[i].Seq == seq {
			now := requestcontext.Now(ctx)
			q.messages[i].RelayedAt = &now
			return nil
		}
	}
	return nil
}

// All returns every enqueued message in sequence order. Test helper.
func (q *InMemory) All() []models.Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]models.Message, len(q.messages))
	copy(out, q.messages)
	return out
}
