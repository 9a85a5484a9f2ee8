package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"docpanel/internal/domain"
	"docpanel/internal/pending/models"
	"docpanel/internal/pending/service"
	dErrors "docpanel/pkg/domain-errors"
	"docpanel/pkg/platform/httputil"
)

// Service defines the pending-identifier operations the handler needs.
type Service interface {
	List(ctx context.Context) ([]models.PendingIdentifier, error)
	Delete(ctx context.Context, identifier string, notify bool) (*models.PendingIdentifier, error)
	SweepExpired(ctx context.Context) (service.SweepResult, error)
}

// Handler exposes the pending-identifier endpoints.
type Handler struct {
	pending Service
	logger  *slog.Logger
}

func New(pending Service, logger *slog.Logger) *Handler {
	return &Handler{pending: pending, logger: logger}
}

// Register mounts the pending-identifier routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/curp-pendientes", h.handleList)
	r.Post("/eliminar-curp-pendiente", h.handleDelete)
	r.Post("/limpiar-curps-expiradas", h.handleSweep)
}

type pendingView struct {
	Identifier       string `json:"identificador"`
	SenderID         string `json:"remitente_id"`
	SenderName       string `json:"remitente_nombre"`
	SenderKind       string `json:"tipo_remitente"`
	DocumentType     string `json:"tipo_acta"`
	WantsFraming     bool   `json:"solicita_marco"`
	WantsFolio       bool   `json:"solicita_folio"`
	GroupAutoFraming bool   `json:"es_grupo_auto_marco"`
	AttemptCount     int    `json:"intentos"`
	ElapsedMinutes   int    `json:"tiempo_transcurrido_min"`
}

type listResponse struct {
	Success bool          `json:"success"`
	Pending []pendingView `json:"pendientes"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.pending.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list pending identifiers", "error", err.Error())
		httputil.WriteError(w, err)
		return
	}

	resp := listResponse{Success: true, Pending: make([]pendingView, 0, len(records))}
	for _, record := range records {
		kind := "Usuario"
		if domain.IsGroup(record.SenderID) {
			kind = "Grupo"
		}
		resp.Pending = append(resp.Pending, pendingView{
			Identifier:       record.Identifier,
			SenderID:         record.SenderID,
			SenderName:       domain.FormatNumber(record.SenderID),
			SenderKind:       kind,
			DocumentType:     record.DocumentType,
			WantsFraming:     record.WantsFraming,
			WantsFolio:       record.WantsFolio,
			GroupAutoFraming: record.GroupAutoFraming,
			AttemptCount:     record.AttemptCount,
			ElapsedMinutes:   record.ElapsedMinutes,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

type deleteRequest struct {
	Identifier string `json:"identificador"`
	// Notify defaults to true when absent from the request body.
	Notify *bool `json:"notificar"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "cuerpo de solicitud inválido"))
		return
	}
	notify := req.Notify == nil || *req.Notify

	if _, err := h.pending.Delete(r.Context(), req.Identifier, notify); err != nil {
		httputil.WriteError(w, err)
		return
	}

	message := "CURP " + req.Identifier + " eliminada exitosamente"
	if notify {
		message += " y usuario original notificado"
	}
	httputil.WriteJSON(w, http.StatusOK, messageResponse{Success: true, Message: message})
}

type sweepResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Removed int    `json:"eliminadas"`
	Kept    int    `json:"mantenidas"`
}

func (h *Handler) handleSweep(w http.ResponseWriter, r *http.Request) {
	result, err := h.pending.SweepExpired(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, sweepResponse{
		Success: true,
		Message: "Limpieza completada",
		Removed: result.Removed,
		Kept:    result.Kept,
	})
}
