package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"docpanel/internal/admins/cache"
	"docpanel/internal/admins/models"
	"docpanel/internal/admins/store"
	"docpanel/internal/domain"
	dErrors "docpanel/pkg/domain-errors"
	"docpanel/pkg/platform/sentinel"
	"docpanel/pkg/requestcontext"
)

// Service is the administrator registry. It owns the exempt-sender set and is
// consulted synchronously by the authorization service and the notification
// dispatcher.
type Service struct {
	store  store.Store
	cache  *cache.AdminCache
	logger *slog.Logger
}

func New(st store.Store, adminCache *cache.AdminCache, logger *slog.Logger) *Service {
	return &Service{store: st, cache: adminCache, logger: logger}
}

// IsAdmin reports whether senderID is currently an administrator.
func (s *Service) IsAdmin(ctx context.Context, senderID string) (bool, error) {
	if isAdmin, hit := s.cache.Get(ctx, senderID); hit {
		return isAdmin, nil
	}

	_, err := s.store.Get(ctx, senderID)
	switch {
	case err == nil:
		s.cache.Set(ctx, senderID, true)
		return true, nil
	case errors.Is(err, sentinel.ErrNotFound):
		s.cache.Set(ctx, senderID, false)
		return false, nil
	default:
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "error consultando administradores")
	}
}

// List returns all administrators in creation order.
func (s *Service) List(ctx context.Context) ([]models.Administrator, error) {
	admins, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "error consultando administradores")
	}
	return admins, nil
}

// Add registers a new administrator. Kind defaults from the identifier suffix
// when not supplied by the caller.
func (s *Service) Add(ctx context.Context, senderID, name string, kind domain.SenderKind, actor string) (*models.Administrator, error) {
	senderID = strings.TrimSpace(senderID)
	name = strings.TrimSpace(name)
	if senderID == "" || name == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "ID de remitente y nombre son requeridos")
	}
	if kind == "" {
		kind = domain.KindOf(senderID)
	}
	if !kind.Valid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Tipo de remitente inválido")
	}

	admin := &models.Administrator{
		SenderID:  senderID,
		Name:      name,
		Kind:      kind,
		AddedBy:   actor,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.store.Add(ctx, admin); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "El remitente ya es administrador")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "error agregando administrador")
	}

	s.cache.Invalidate(ctx, senderID)
	s.logger.InfoContext(ctx, "administrator added",
		"request_id", requestcontext.RequestID(ctx),
		"sender_id", senderID,
		"actor", actor,
	)
	return admin, nil
}

// Remove deletes an administrator from the registry.
func (s *Service) Remove(ctx context.Context, senderID, actor string) error {
	senderID = strings.TrimSpace(senderID)
	if senderID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "ID de remitente requerido")
	}

	if err := s.store.Remove(ctx, senderID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeConflict, "El remitente no es administrador")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "error removiendo administrador")
	}

	s.cache.Invalidate(ctx, senderID)
	s.logger.InfoContext(ctx, "administrator removed",
		"request_id", requestcontext.RequestID(ctx),
		"sender_id", senderID,
		"actor", actor,
	)
	return nil
}
