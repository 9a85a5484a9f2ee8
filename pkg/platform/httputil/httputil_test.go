package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	dErrors "docpanel/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("not found maps to 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeNotFound, "CURP no encontrada"))

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
		}

		var body ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body.Success {
			t.Fatalf("expected success=false in error envelope")
		}
		if body.Error != "CURP no encontrada" {
			t.Fatalf("expected verbatim message, got %q", body.Error)
		}
	})

	t.Run("admin conflict maps to 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeAdminConflict, "no se puede autorizar a un administrador"))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("unclassified errors map to 500 with verbatim message", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.Wrap(errDB, dErrors.CodeInternal, "query failed"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}
		var body ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body.Error != "query failed: connection refused" {
			t.Fatalf("expected wrapped message surfaced, got %q", body.Error)
		}
	})
}

var errDB = errors.New("connection refused")
