// Package httputil centralizes JSON response writing so every endpoint shares
// the same `success` envelope and the same domain-error to status mapping.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "docpanel/pkg/domain-errors"
)

// ErrorResponse is the failure envelope returned by every endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// WriteJSON writes v with the given status. Encoding failures are ignored at
// this point; the status line has already been committed.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the failure envelope. The message
// is surfaced verbatim, including for internal errors, so operators can see
// the underlying cause from the panel.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	WriteJSON(w, StatusForCode(code), ErrorResponse{Success: false, Error: err.Error()})
}

// StatusForCode maps domain error codes to HTTP statuses.
func StatusForCode(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeAdminConflict, dErrors.CodeConflict:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
