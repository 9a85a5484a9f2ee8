package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	adminService "docpanel/internal/admins/service"
	adminStore "docpanel/internal/admins/store"
	"docpanel/internal/platform/logger"
)

func newRouter(t *testing.T) (chi.Router, *adminService.Service) {
	t.Helper()
	svc := adminService.New(adminStore.NewInMemory(), nil, logger.New())
	r := chi.NewRouter()
	New(svc, logger.New()).Register(r)
	return r, svc
}

func postJSON(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAddAndListAdministrators(t *testing.T) {
	router, _ := newRouter(t)

	rec := postJSON(t, router, "/add-administrator", map[string]string{
		"remitente_id": "5211111111111",
		"nombre":       "Ana",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var addResp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&addResp))
	require.True(t, addResp.Success)
	require.Equal(t, "Administrador Ana agregado exitosamente", addResp.Message)

	listReq := httptest.NewRequest(http.MethodGet, "/administrators", nil)
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, listReq)
	require.Equal(t, http.StatusOK, listRec.Code)

	var listResp struct {
		Success        bool `json:"success"`
		Administrators []struct {
			ID              string `json:"id"`
			Name            string `json:"nombre"`
			FormattedNumber string `json:"numero_formateado"`
		} `json:"administradores"`
		Total int `json:"total"`
	}
	require.NoError(t, json.NewDecoder(listRec.Body).Decode(&listResp))
	require.Equal(t, 1, listResp.Total)
	require.Equal(t, "+5211111111111", listResp.Administrators[0].FormattedNumber)
}

func TestAddAdministratorDuplicate(t *testing.T) {
	router, _ := newRouter(t)

	payload := map[string]string{"remitente_id": "5211111111111", "nombre": "Ana"}
	require.Equal(t, http.StatusOK, postJSON(t, router, "/add-administrator", payload).Code)

	rec := postJSON(t, router, "/add-administrator", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.False(t, resp.Success)
	require.Equal(t, "El remitente ya es administrador", resp.Error)
}

func TestAddAdministratorMissingFields(t *testing.T) {
	router, _ := newRouter(t)
	rec := postJSON(t, router, "/add-administrator", map[string]string{"nombre": "SinID"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveAdministrator(t *testing.T) {
	router, _ := newRouter(t)

	require.Equal(t, http.StatusOK, postJSON(t, router, "/add-administrator", map[string]string{
		"remitente_id": "5212222222222",
		"nombre":       "Luis",
	}).Code)

	rec := postJSON(t, router, "/remove-administrator", map[string]string{"remitente_id": "5212222222222"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, router, "/remove-administrator", map[string]string{"remitente_id": "5212222222222"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
