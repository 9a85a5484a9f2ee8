package store

import (
	"context"

	"docpanel/internal/stats/models"
)

// Store reads the per-sender document counters maintained by the
// verification pipeline. The panel only reads them.
type Store interface {
	// Totals returns the aggregate document and sender counts.
	Totals(ctx context.Context) (models.Totals, error)

	// Top returns up to limit senders ordered by document count descending.
	Top(ctx context.Context, limit int) ([]models.SenderCount, error)
}
