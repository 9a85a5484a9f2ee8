package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	adminModels "docpanel/internal/admins/models"
	notifyModels "docpanel/internal/notify/models"
	"docpanel/internal/pending/models"
	"docpanel/internal/pending/store"
	dErrors "docpanel/pkg/domain-errors"
	"docpanel/pkg/platform/sentinel"
	"docpanel/pkg/requestcontext"
)

// Notifier is the slice of the dispatcher this service needs.
type Notifier interface {
	NotifyRequester(ctx context.Context, identifier, recipient, documentType string) (*notifyModels.Message, error)
	NotifyAdminsOfDeletion(ctx context.Context, identifier, originalRecipient string, admins []adminModels.Administrator) []notifyModels.Message
}

// AdminDirectory lists administrators for the deletion audit fan-out.
type AdminDirectory interface {
	List(ctx context.Context) ([]adminModels.Administrator, error)
}

// Metrics is the slice of the metrics registry this service emits to.
type Metrics interface {
	AddPendingSwept(n int)
}

// SweepResult reports the outcome of an expiration sweep.
type SweepResult struct {
	Removed int
	Kept    int
}

// Service manages the pending-identifier lifecycle.
type Service struct {
	store      store.Store
	dispatcher Notifier
	admins     AdminDirectory
	ttl        time.Duration
	metrics    Metrics
	logger     *slog.Logger
}

func New(st store.Store, dispatcher Notifier, admins AdminDirectory, ttl time.Duration, metrics Metrics, logger *slog.Logger) *Service {
	return &Service{
		store:      st,
		dispatcher: dispatcher,
		admins:     admins,
		ttl:        ttl,
		metrics:    metrics,
		logger:     logger,
	}
}

// List returns pending identifiers with elapsed minutes computed against the
// request clock, so repeated reads never serve a stale stored age.
func (s *Service) List(ctx context.Context) ([]models.PendingIdentifier, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "error consultando CURPs pendientes")
	}
	now := requestcontext.Now(ctx)
	for i := range records {
		records[i].ElapsedMinutes = records[i].ElapsedMinutesAt(now)
	}
	return records, nil
}

// Count returns the number of pending identifiers.
func (s *Service) Count(ctx context.Context) (int, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "error contando CURPs pendientes")
	}
	return count, nil
}

// Delete removes a pending identifier. When notify is set, the original
// requester gets the rejection notice and every administrator an audit copy.
// Notification failures are logged and never fail the delete: the record is
// already gone and the outbox retries delivery on its own.
func (s *Service) Delete(ctx context.Context, identifier string, notify bool) (*models.PendingIdentifier, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Identificador requerido")
	}

	removed, err := s.store.Remove(ctx, identifier)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "CURP no encontrada")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "error eliminando CURP pendiente")
	}

	s.logger.InfoContext(ctx, "pending identifier deleted",
		"request_id", requestcontext.RequestID(ctx),
		"identifier", identifier,
		"requester", removed.SenderID,
		"notify", notify,
	)

	if notify {
		if _, err := s.dispatcher.NotifyRequester(ctx, removed.Identifier, removed.SenderID, removed.DocumentType); err != nil {
			s.logger.ErrorContext(ctx, "failed to notify requester",
				"request_id", requestcontext.RequestID(ctx),
				"identifier", identifier,
				"error", err.Error(),
			)
		}

		admins, err := s.admins.List(ctx)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to list administrators for deletion log",
				"request_id", requestcontext.RequestID(ctx),
				"identifier", identifier,
				"error", err.Error(),
			)
		} else if len(admins) > 0 {
			s.dispatcher.NotifyAdminsOfDeletion(ctx, removed.Identifier, removed.SenderID, admins)
		}
	}

	return removed, nil
}

// SweepExpired removes every pending identifier older than the configured
// TTL. Expired requests are dropped silently; only explicit deletions
// notify.
func (s *Service) SweepExpired(ctx context.Context) (SweepResult, error) {
	cutoff := requestcontext.Now(ctx).Add(-s.ttl)
	removed, err := s.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return SweepResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "error limpiando CURPs expiradas")
	}
	kept, err := s.store.Count(ctx)
	if err != nil {
		return SweepResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "error contando CURPs pendientes")
	}

	if s.metrics != nil {
		s.metrics.AddPendingSwept(removed)
	}
	s.logger.InfoContext(ctx, "pending identifiers swept",
		"request_id", requestcontext.RequestID(ctx),
		"removed", removed,
		"kept", kept,
		"ttl", s.ttl.String(),
	)
	return SweepResult{Removed: removed, Kept: kept}, nil
}
