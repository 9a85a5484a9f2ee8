package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"docpanel/internal/authz/models"
	"docpanel/internal/authz/store"
	"docpanel/internal/domain"
	dErrors "docpanel/pkg/domain-errors"
	"docpanel/pkg/platform/sentinel"
	"docpanel/pkg/requestcontext"
)

// AdminChecker is the slice of the administrator registry this service needs.
// Administrators bypass authorization entirely, so they must never appear as
// authorized senders.
type AdminChecker interface {
	IsAdmin(ctx context.Context, senderID string) (bool, error)
}

// Metrics is the slice of the metrics registry this service emits to.
type Metrics interface {
	IncrementAuthorization(action string)
}

// Service is the authorization registry for senders submitting documents.
type Service struct {
	store   store.Store
	admins  AdminChecker
	metrics Metrics
	logger  *slog.Logger
}

func New(st store.Store, admins AdminChecker, metrics Metrics, logger *slog.Logger) *Service {
	return &Service{store: st, admins: admins, metrics: metrics, logger: logger}
}

// Authorize grants processing rights to a sender. The admin-conflict check
// runs before any mutation so the authorization and exemption sets stay
// disjoint. Idempotent: re-authorizing returns applied=false without error.
func (s *Service) Authorize(ctx context.Context, senderID string, kind domain.SenderKind, actor string) (bool, error) {
	senderID = strings.TrimSpace(senderID)
	if senderID == "" {
		return false, dErrors.New(dErrors.CodeBadRequest, "ID y tipo requeridos")
	}
	if !kind.Valid() {
		return false, dErrors.New(dErrors.CodeBadRequest, "Tipo inválido")
	}

	isAdmin, err := s.admins.IsAdmin(ctx, senderID)
	if err != nil {
		return false, err
	}
	if isAdmin {
		return false, dErrors.New(dErrors.CodeAdminConflict,
			"No se puede autorizar a un administrador. Los administradores tienen acceso automático.")
	}

	auth, err := s.store.Find(ctx, senderID)
	switch {
	case err == nil:
		if auth.Authorized {
			s.incr("already_authorized")
			return false, nil
		}
	case errors.Is(err, sentinel.ErrNotFound):
		auth = &models.Authorization{SenderID: senderID}
	default:
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "error consultando autorizaciones")
	}

	auth.Kind = kind
	auth.Authorized = true
	auth.AuthorizedAt = requestcontext.Now(ctx)
	if err := s.store.Save(ctx, auth); err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "error guardando autorización")
	}

	s.incr("granted")
	s.logger.InfoContext(ctx, "sender authorized",
		"request_id", requestcontext.RequestID(ctx),
		"sender_id", senderID,
		"kind", string(kind),
		"actor", actor,
	)
	return true, nil
}

// Revoke withdraws processing rights. The record is kept with
// Authorized=false so history survives revocation.
func (s *Service) Revoke(ctx context.Context, senderID string, kind domain.SenderKind) (bool, error) {
	senderID = strings.TrimSpace(senderID)
	if senderID == "" {
		return false, dErrors.New(dErrors.CodeBadRequest, "ID y tipo requeridos")
	}
	if !kind.Valid() {
		return false, dErrors.New(dErrors.CodeBadRequest, "Tipo inválido")
	}

	auth, err := s.store.Find(ctx, senderID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, dErrors.New(dErrors.CodeNotFound, notFoundMessage(kind))
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "error consultando autorizaciones")
	}
	if !auth.Authorized {
		// Already revoked senders are not in the authorized set.
		return false, dErrors.New(dErrors.CodeNotFound, notFoundMessage(kind))
	}

	auth.Authorized = false
	if err := s.store.Save(ctx, auth); err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "error guardando autorización")
	}

	s.incr("revoked")
	s.logger.InfoContext(ctx, "sender authorization revoked",
		"request_id", requestcontext.RequestID(ctx),
		"sender_id", senderID,
	)
	return true, nil
}

// UpdateSpecialConfig upserts the per-sender processing flags.
func (s *Service) UpdateSpecialConfig(ctx context.Context, senderID string, autoFraming, autoAPIUpload bool, actor string) error {
	senderID = strings.TrimSpace(senderID)
	if senderID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "ID de remitente requerido")
	}

	auth, err := s.store.Find(ctx, senderID)
	switch {
	case err == nil:
	case errors.Is(err, sentinel.ErrNotFound):
		auth = &models.Authorization{
			SenderID: senderID,
			Kind:     domain.KindOf(senderID),
		}
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "error consultando autorizaciones")
	}

	now := requestcontext.Now(ctx)
	auth.AutoFraming = autoFraming
	auth.AutoAPIUpload = autoAPIUpload
	auth.ConfiguredBy = actor
	auth.ConfiguredAt = &now
	if err := s.store.Save(ctx, auth); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "error guardando configuración especial")
	}

	s.logger.InfoContext(ctx, "special config updated",
		"request_id", requestcontext.RequestID(ctx),
		"sender_id", senderID,
		"auto_framing", autoFraming,
		"auto_api_upload", autoAPIUpload,
	)
	return nil
}

// ListAuthorized returns authorized senders partitioned by kind for
// presentation.
func (s *Service) ListAuthorized(ctx context.Context) (users, groups []models.Authorization, err error) {
	records, err := s.store.ListAuthorized(ctx)
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "error consultando autorizados")
	}
	for _, record := range records {
		if record.Kind == domain.SenderGroup {
			groups = append(groups, record)
		} else {
			users = append(users, record)
		}
	}
	return users, groups, nil
}

func (s *Service) incr(action string) {
	if s.metrics != nil {
		s.metrics.IncrementAuthorization(action)
	}
}

func notFoundMessage(kind domain.SenderKind) string {
	if kind == domain.SenderGroup {
		return "Grupo no encontrado en autorizados"
	}
	return "Usuario no encontrado en autorizados"
}
