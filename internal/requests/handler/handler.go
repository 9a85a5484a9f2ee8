package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"docpanel/internal/domain"
	"docpanel/internal/requests/store"
	dErrors "docpanel/pkg/domain-errors"
	"docpanel/pkg/platform/httputil"
)

// Handler exposes the pending-senders listing: senders with requests on file
// that nobody has authorized yet.
type Handler struct {
	store  store.Store
	logger *slog.Logger
}

func New(st store.Store, logger *slog.Logger) *Handler {
	return &Handler{store: st, logger: logger}
}

// Register mounts the pending-senders route.
func (h *Handler) Register(r chi.Router) {
	r.Get("/pending", h.handlePending)
}

type userView struct {
	ID   string `json:"id"`
	Name string `json:"nombre"`
}

type groupView struct {
	ID           string `json:"id"`
	Name         string `json:"nombre"`
	Participants string `json:"participantes"`
}

type pendingResponse struct {
	Success bool        `json:"success"`
	Users   []userView  `json:"usuarios_pendientes"`
	Groups  []groupView `json:"grupos_pendientes"`
}

func (h *Handler) handlePending(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	senders, err := h.store.PendingUnauthorized(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list pending senders", "error", err.Error())
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "error consultando pendientes"))
		return
	}

	resp := pendingResponse{
		Success: true,
		Users:   make([]userView, 0),
		Groups:  make([]groupView, 0),
	}
	for _, sender := range senders {
		name := sender.Name
		if domain.IsGroup(sender.SenderID) {
			if name == "" {
				name = domain.DisplayName(sender.SenderID)
			}
			resp.Groups = append(resp.Groups, groupView{
				ID:   sender.SenderID,
				Name: name,
				// Membership lives with the messaging transport, not here.
				Participants: "N/A",
			})
			continue
		}
		if name == "" {
			name = domain.FormatNumber(sender.SenderID)
		}
		resp.Users = append(resp.Users, userView{ID: sender.SenderID, Name: name})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
