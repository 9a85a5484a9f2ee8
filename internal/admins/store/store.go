package store

import (
	"context"

	"docpanel/internal/admins/models"
)

// Store persists administrator records. Implementations return sentinel
// errors; the service layer translates them into domain errors.
type Store interface {
	// Get returns the administrator for senderID or sentinel.ErrNotFound.
	Get(ctx context.Context, senderID string) (*models.Administrator, error)

	// List returns all administrators ordered by creation time.
	List(ctx context.Context) ([]models.Administrator, error)

	// Add inserts a new administrator or returns sentinel.ErrConflict when
	// the senderID is already registered.
	Add(ctx context.Context, admin *models.Administrator) error

	// Remove deletes the administrator or returns sentinel.ErrNotFound.
	Remove(ctx context.Context, senderID string) error
}
