package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	adminService "docpanel/internal/admins/service"
	adminStore "docpanel/internal/admins/store"
	"docpanel/internal/notify"
	"docpanel/internal/notify/queue"
	"docpanel/internal/pending/models"
	pendingService "docpanel/internal/pending/service"
	pendingStore "docpanel/internal/pending/store"
	"docpanel/internal/platform/logger"
)

type fixture struct {
	router chi.Router
	store  *pendingStore.InMemory
	queue  *queue.InMemory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.New()
	st := pendingStore.NewInMemory()
	q := queue.NewInMemory()
	admins := adminService.New(adminStore.NewInMemory(), nil, log)
	dispatcher := notify.NewDispatcher(q, nil, log)
	pending := pendingService.New(st, dispatcher, admins, 30*time.Minute, nil, log)
	r := chi.NewRouter()
	New(pending, log).Register(r)
	return &fixture{router: r, store: st, queue: q}
}

func (f *fixture) seed(t *testing.T, identifier string, age time.Duration) {
	t.Helper()
	require.NoError(t, f.store.Add(context.Background(), &models.PendingIdentifier{
		Identifier:   identifier,
		SenderID:     "5219999999999",
		DocumentType: "acta",
		WantsFraming: true,
		AttemptCount: 2,
		RequestedAt:  time.Now().Add(-age),
	}))
}

func (f *fixture) post(t *testing.T, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var resp envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestListPending(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "ABCD1234", 5*time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/curp-pendientes", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Pending []struct {
			Identifier     string `json:"identificador"`
			SenderName     string `json:"remitente_nombre"`
			SenderKind     string `json:"tipo_remitente"`
			DocumentType   string `json:"tipo_acta"`
			WantsFraming   bool   `json:"solicita_marco"`
			AttemptCount   int    `json:"intentos"`
			ElapsedMinutes int    `json:"tiempo_transcurrido_min"`
		} `json:"pendientes"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)
	require.Len(t, resp.Pending, 1)
	require.Equal(t, "ABCD1234", resp.Pending[0].Identifier)
	require.Equal(t, "+5219999999999", resp.Pending[0].SenderName)
	require.Equal(t, "Usuario", resp.Pending[0].SenderKind)
	require.Equal(t, "acta", resp.Pending[0].DocumentType)
	require.True(t, resp.Pending[0].WantsFraming)
	require.Equal(t, 2, resp.Pending[0].AttemptCount)
	require.Equal(t, 5, resp.Pending[0].ElapsedMinutes)
}

func TestDeletePendingNotifies(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "ABCD1234", 5*time.Minute)

	rec := f.post(t, "/eliminar-curp-pendiente", map[string]any{"identificador": "ABCD1234"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "CURP ABCD1234 eliminada exitosamente y usuario original notificado", decode(t, rec).Message)

	all := f.queue.All()
	require.Len(t, all, 1)
	require.Equal(t, "5219999999999", all[0].Recipient)
}

func TestDeletePendingWithoutNotify(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "ABCD1234", 5*time.Minute)

	rec := f.post(t, "/eliminar-curp-pendiente", map[string]any{"identificador": "ABCD1234", "notificar": false})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "CURP ABCD1234 eliminada exitosamente", decode(t, rec).Message)
	require.Empty(t, f.queue.All())
}

func TestDeletePendingErrors(t *testing.T) {
	f := newFixture(t)

	rec := f.post(t, "/eliminar-curp-pendiente", map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Identificador requerido", decode(t, rec).Error)

	rec = f.post(t, "/eliminar-curp-pendiente", map[string]any{"identificador": "ZZZZ9999"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "CURP no encontrada", decode(t, rec).Error)
}

func TestSweepExpired(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "OLD1", 45*time.Minute)
	f.seed(t, "FRESH", 5*time.Minute)

	rec := f.post(t, "/limpiar-curps-expiradas", map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Removed int    `json:"eliminadas"`
		Kept    int    `json:"mantenidas"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)
	require.Equal(t, "Limpieza completada", resp.Message)
	require.Equal(t, 1, resp.Removed)
	require.Equal(t, 1, resp.Kept)
}
