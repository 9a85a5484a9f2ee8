package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"docpanel/internal/domain"
	"docpanel/internal/stats/store"
	dErrors "docpanel/pkg/domain-errors"
	"docpanel/pkg/platform/httputil"
)

// topLimit caps the detailed ranking at the panel's table size.
const topLimit = 10

// Handler exposes the read-only statistics endpoint.
type Handler struct {
	store  store.Store
	logger *slog.Logger
}

func New(st store.Store, logger *slog.Logger) *Handler {
	return &Handler{store: st, logger: logger}
}

// Register mounts the statistics route.
func (h *Handler) Register(r chi.Router) {
	r.Get("/statistics", h.handleStatistics)
}

type detailView struct {
	Name      string `json:"nombre"`
	Kind      string `json:"tipo"`
	Documents int64  `json:"documentos"`
}

type statisticsResponse struct {
	Success        bool         `json:"success"`
	TotalDocuments int64        `json:"total_documentos"`
	TotalSenders   int64        `json:"total_usuarios"`
	Details        []detailView `json:"estadisticas_detalladas"`
}

func (h *Handler) handleStatistics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	totals, err := h.store.Totals(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read counter totals", "error", err.Error())
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "error consultando estadísticas"))
		return
	}
	top, err := h.store.Top(ctx, topLimit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read top senders", "error", err.Error())
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "error consultando estadísticas"))
		return
	}

	resp := statisticsResponse{
		Success:        true,
		TotalDocuments: totals.Documents,
		TotalSenders:   totals.Senders,
		Details:        make([]detailView, 0, len(top)),
	}
	for _, count := range top {
		kind := "Usuario"
		if domain.IsGroup(count.SenderID) {
			kind = "Grupo"
		}
		name := count.Name
		if name == "" {
			name = domain.FormatNumber(count.SenderID)
		}
		resp.Details = append(resp.Details, detailView{
			Name:      name,
			Kind:      kind,
			Documents: count.Documents,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
