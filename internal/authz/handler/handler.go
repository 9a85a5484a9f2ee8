package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	adminModels "docpanel/internal/admins/models"
	"docpanel/internal/authz/models"
	"docpanel/internal/domain"
	dErrors "docpanel/pkg/domain-errors"
	"docpanel/pkg/platform/httputil"
)

const panelActor = "PANEL_WEB"

// Service defines the authorization operations the handler needs.
type Service interface {
	Authorize(ctx context.Context, senderID string, kind domain.SenderKind, actor string) (bool, error)
	Revoke(ctx context.Context, senderID string, kind domain.SenderKind) (bool, error)
	UpdateSpecialConfig(ctx context.Context, senderID string, autoFraming, autoAPIUpload bool, actor string) error
	ListAuthorized(ctx context.Context) (users, groups []models.Authorization, err error)
}

// AdminDirectory lists administrators for the combined /authorized view.
type AdminDirectory interface {
	List(ctx context.Context) ([]adminModels.Administrator, error)
}

// Handler exposes the authorization endpoints.
type Handler struct {
	authz  Service
	admins AdminDirectory
	logger *slog.Logger
}

func New(authz Service, admins AdminDirectory, logger *slog.Logger) *Handler {
	return &Handler{authz: authz, admins: admins, logger: logger}
}

// Register mounts the authorization routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/authorized", h.handleListAuthorized)
	r.Post("/authorize", h.handleAuthorize)
	r.Post("/revoke", h.handleRevoke)
	r.Post("/update-special-config", h.handleUpdateSpecialConfig)
}

type authorizedView struct {
	ID            string     `json:"id"`
	Name          string     `json:"nombre"`
	AuthorizedAt  *time.Time `json:"fecha_autorizacion"`
	AutoFraming   bool       `json:"enmarcado_automatico"`
	AutoAPIUpload bool       `json:"subir_api_automatico"`
	ConfiguredBy  *string    `json:"configurado_por"`
	ConfiguredAt  *time.Time `json:"fecha_configuracion"`
}

type adminView struct {
	ID              string     `json:"id"`
	Name            string     `json:"nombre"`
	Kind            string     `json:"tipo"`
	CreatedAt       *time.Time `json:"fecha_creacion"`
	FormattedNumber string     `json:"numero_formateado"`
}

type authorizedResponse struct {
	Success             bool             `json:"success"`
	Users               []authorizedView `json:"usuarios"`
	Groups              []authorizedView `json:"grupos"`
	Administrators      []adminView      `json:"administradores"`
	TotalAuthorized     int              `json:"total_autorizados"`
	TotalAdministrators int              `json:"total_administradores"`
}

func (h *Handler) handleListAuthorized(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, groups, err := h.authz.ListAuthorized(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list authorized senders", "error", err.Error())
		httputil.WriteError(w, err)
		return
	}
	admins, err := h.admins.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list administrators", "error", err.Error())
		httputil.WriteError(w, err)
		return
	}

	resp := authorizedResponse{
		Success:             true,
		Users:               make([]authorizedView, 0, len(users)),
		Groups:              make([]authorizedView, 0, len(groups)),
		Administrators:      make([]adminView, 0, len(admins)),
		TotalAuthorized:     len(users) + len(groups),
		TotalAdministrators: len(admins),
	}
	for _, user := range users {
		resp.Users = append(resp.Users, toAuthorizedView(user))
	}
	for _, group := range groups {
		resp.Groups = append(resp.Groups, toAuthorizedView(group))
	}
	for _, admin := range admins {
		created := admin.CreatedAt
		resp.Administrators = append(resp.Administrators, adminView{
			ID:              admin.SenderID,
			Name:            admin.Name,
			Kind:            string(admin.Kind),
			CreatedAt:       &created,
			FormattedNumber: domain.FormatNumber(admin.SenderID),
		})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func toAuthorizedView(auth models.Authorization) authorizedView {
	view := authorizedView{
		ID:            auth.SenderID,
		Name:          domain.DisplayName(auth.SenderID),
		AutoFraming:   auth.AutoFraming,
		AutoAPIUpload: auth.AutoAPIUpload,
		ConfiguredAt:  auth.ConfiguredAt,
	}
	if !auth.AuthorizedAt.IsZero() {
		at := auth.AuthorizedAt
		view.AuthorizedAt = &at
	}
	if auth.ConfiguredBy != "" {
		by := auth.ConfiguredBy
		view.ConfiguredBy = &by
	}
	return view
}

type senderRequest struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	req, kind, ok := h.decodeSenderRequest(w, r)
	if !ok {
		return
	}

	applied, err := h.authz.Authorize(r.Context(), req.ID, kind, panelActor)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	message := kindNoun(kind) + " autorizado exitosamente"
	if !applied {
		message = kindNoun(kind) + " ya estaba autorizado"
	}
	httputil.WriteJSON(w, http.StatusOK, messageResponse{Success: true, Message: message})
}

func (h *Handler) handleRevoke(w http.ResponseWriter, r *http.Request) {
	req, kind, ok := h.decodeSenderRequest(w, r)
	if !ok {
		return
	}

	if _, err := h.authz.Revoke(r.Context(), req.ID, kind); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Autorización de " + kindNounLower(kind) + " revocada exitosamente",
	})
}

func (h *Handler) decodeSenderRequest(w http.ResponseWriter, r *http.Request) (senderRequest, domain.SenderKind, bool) {
	var req senderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "cuerpo de solicitud inválido"))
		return req, "", false
	}
	if req.ID == "" || req.Type == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "ID y tipo requeridos"))
		return req, "", false
	}
	kind, ok := domain.ParseSenderKind(req.Type)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Tipo inválido"))
		return req, "", false
	}
	return req, kind, true
}

type specialConfigRequest struct {
	SenderID      string `json:"remitente_id"`
	AutoFraming   bool   `json:"enmarcado_automatico"`
	AutoAPIUpload bool   `json:"subir_api_automatico"`
}

func (h *Handler) handleUpdateSpecialConfig(w http.ResponseWriter, r *http.Request) {
	var req specialConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "cuerpo de solicitud inválido"))
		return
	}

	if err := h.authz.UpdateSpecialConfig(r.Context(), req.SenderID, req.AutoFraming, req.AutoAPIUpload, panelActor); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Configuración especial actualizada exitosamente",
	})
}

func kindNoun(kind domain.SenderKind) string {
	if kind == domain.SenderGroup {
		return "Grupo"
	}
	return "Usuario"
}

func kindNounLower(kind domain.SenderKind) string {
	if kind == domain.SenderGroup {
		return "grupo"
	}
	return "usuario"
}
