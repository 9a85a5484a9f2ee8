package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"docpanel/internal/platform/logger"
	"docpanel/internal/requests/store"
)

func TestPendingSenders(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	st := store.NewInMemory()
	st.Record("5211234567890", "Ana", base.Add(-3*time.Hour))
	st.Record("5211234567890", "Ana", base.Add(-time.Hour))
	st.Record("5218888888888", "", base.Add(-30*time.Minute))
	st.Record("120363000000000001@g.us", "", base.Add(-2*time.Hour))
	st.Record("5217777777777", "Luis", base.Add(-4*time.Hour))
	st.Authorize("5217777777777")

	r := chi.NewRouter()
	New(st, logger.New()).Register(r)

	req := httptest.NewRequest(http.MethodGet, "/pending", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Users   []struct {
			ID   string `json:"id"`
			Name string `json:"nombre"`
		} `json:"usuarios_pendientes"`
		Groups []struct {
			ID           string `json:"id"`
			Name         string `json:"nombre"`
			Participants string `json:"participantes"`
		} `json:"grupos_pendientes"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)

	// One row per sender, newest request first, authorized senders excluded.
	require.Len(t, resp.Users, 2)
	require.Equal(t, "5218888888888", resp.Users[0].ID)
	require.Equal(t, "+5218888888888", resp.Users[0].Name)
	require.Equal(t, "5211234567890", resp.Users[1].ID)
	require.Equal(t, "Ana", resp.Users[1].Name)

	require.Len(t, resp.Groups, 1)
	require.Equal(t, "120363000000000001@g.us", resp.Groups[0].ID)
	require.Equal(t, "Grupo: +120363000000000001", resp.Groups[0].Name)
	require.Equal(t, "N/A", resp.Groups[0].Participants)
}

func TestPendingSendersEmpty(t *testing.T) {
	r := chi.NewRouter()
	New(store.NewInMemory(), logger.New()).Register(r)

	req := httptest.NewRequest(http.MethodGet, "/pending", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Users  json.RawMessage `json:"usuarios_pendientes"`
		Groups json.RawMessage `json:"grupos_pendientes"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.JSONEq(t, "[]", string(resp.Users))
	require.JSONEq(t, "[]", string(resp.Groups))
}
