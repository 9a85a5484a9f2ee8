package queue

import (
	"context"

	"docpanel/internal/notify/models"
)

// Queue is the append-only notification outbox. Enqueue is idempotent on
// (correlation id, recipient) so retried operations cannot duplicate a unit;
// ordering is a monotonic sequence assigned at enqueue time.
type Queue interface {
	// Enqueue appends the message, assigning Seq. Re-enqueueing the same
	// (CorrelationID, Recipient) pair is a no-op, not an error.
	Enqueue(ctx context.Context, msg *models.Message) error

	// NextBatch returns up to limit unrelayed messages in sequence order.
	NextBatch(ctx context.Context, limit int) ([]models.Message, error)

	// MarkRelayed records that the message was handed to the transport.
	MarkRelayed(ctx context.Context, seq int64) error
}
