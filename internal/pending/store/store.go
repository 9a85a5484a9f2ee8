package store

import (
	"context"
	"time"

	"docpanel/internal/pending/models"
)

// Store persists pending identifiers. The bot process is the producer; the
// panel reads, deletes and sweeps.
type Store interface {
	// Add inserts a new pending record or returns sentinel.ErrConflict
	// while the identifier is still pending.
	Add(ctx context.Context, record *models.PendingIdentifier) error

	// List returns all pending records ordered by request time.
	List(ctx context.Context) ([]models.PendingIdentifier, error)

	// Count returns the number of pending records.
	Count(ctx context.Context) (int, error)

	// Remove deletes and returns the record for the identifier, or
	// sentinel.ErrNotFound. The returned record lets callers build the
	// rejection notification for the original requester.
	Remove(ctx context.Context, identifier string) (*models.PendingIdentifier, error)

	// DeleteOlderThan removes every record requested before cutoff and
	// returns how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
