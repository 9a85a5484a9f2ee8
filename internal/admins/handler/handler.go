package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"docpanel/internal/admins/models"
	"docpanel/internal/domain"
	dErrors "docpanel/pkg/domain-errors"
	"docpanel/pkg/platform/httputil"
)

// Actor recorded for mutations performed through the web panel.
const panelActor = "PANEL_WEB"

// Service defines the administrator operations the handler needs.
type Service interface {
	List(ctx context.Context) ([]models.Administrator, error)
	Add(ctx context.Context, senderID, name string, kind domain.SenderKind, actor string) (*models.Administrator, error)
	Remove(ctx context.Context, senderID, actor string) error
}

// Handler exposes administrator management endpoints.
type Handler struct {
	admins Service
	logger *slog.Logger
}

func New(admins Service, logger *slog.Logger) *Handler {
	return &Handler{admins: admins, logger: logger}
}

// Register mounts the administrator routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/administrators", h.handleList)
	r.Post("/add-administrator", h.handleAdd)
	r.Post("/remove-administrator", h.handleRemove)
}

type adminView struct {
	ID              string     `json:"id"`
	Name            string     `json:"nombre"`
	Kind            string     `json:"tipo"`
	CreatedAt       *time.Time `json:"fecha_creacion"`
	FormattedNumber string     `json:"numero_formateado"`
}

type listResponse struct {
	Success        bool        `json:"success"`
	Administrators []adminView `json:"administradores"`
	Total          int         `json:"total"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	admins, err := h.admins.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list administrators", "error", err.Error())
		httputil.WriteError(w, err)
		return
	}

	views := make([]adminView, 0, len(admins))
	for _, admin := range admins {
		views = append(views, toAdminView(admin))
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{
		Success:        true,
		Administrators: views,
		Total:          len(views),
	})
}

func toAdminView(admin models.Administrator) adminView {
	created := admin.CreatedAt
	return adminView{
		ID:              admin.SenderID,
		Name:            admin.Name,
		Kind:            string(admin.Kind),
		CreatedAt:       &created,
		FormattedNumber: domain.FormatNumber(admin.SenderID),
	}
}

type addRequest struct {
	SenderID string `json:"remitente_id"`
	Name     string `json:"nombre"`
	Kind     string `json:"tipo_remitente"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "cuerpo de solicitud inválido"))
		return
	}

	kind := domain.SenderKind(req.Kind)
	if req.Kind != "" && !kind.Valid() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Tipo de remitente inválido"))
		return
	}

	admin, err := h.admins.Add(r.Context(), req.SenderID, req.Name, kind, panelActor)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Administrador " + admin.Name + " agregado exitosamente",
	})
}

type removeRequest struct {
	SenderID string `json:"remitente_id"`
}

func (h *Handler) handleRemove(w http.ResponseWriter, r *http.Request) {
	var req removeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "cuerpo de solicitud inválido"))
		return
	}

	if err := h.admins.Remove(r.Context(), req.SenderID, panelActor); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Administrador removido exitosamente",
	})
}
