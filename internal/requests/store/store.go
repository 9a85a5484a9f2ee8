package store

import (
	"context"

	"docpanel/internal/requests/models"
)

// Store reads the request log written by the verification pipeline. The panel
// only reads it.
type Store interface {
	// PendingUnauthorized returns distinct senders with requests on file and
	// no active authorization, most recent request first.
	PendingUnauthorized(ctx context.Context) ([]models.PendingSender, error)
}
