package store

import (
	"context"

	"docpanel/internal/authz/models"
)

// Store persists authorization records keyed by sender id.
type Store interface {
	// Find returns the record for senderID or sentinel.ErrNotFound.
	Find(ctx context.Context, senderID string) (*models.Authorization, error)

	// Save upserts the record.
	Save(ctx context.Context, auth *models.Authorization) error

	// ListAuthorized returns records with Authorized=true ordered by
	// authorization time.
	ListAuthorized(ctx context.Context) ([]models.Authorization, error)
}
