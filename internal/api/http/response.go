package http

import (
	"encoding/json"
	"net/http"

	"hireflow-backend/internal/apperr"
	"hireflow-backend/internal/logger"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

func writeOK(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func writeCreated(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// writeError maps err to a status code. Unclassified errors are logged and
// answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	message := err.Error()
	if hint := apperr.Hint(err); hint != "" {
		message = message + ": " + hint
	}
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
		if !apperr.IsConfiguration(err) {
			message = "internal server error"
		}
	}
	writeJSON(w, status, Envelope{Success: false, Message: message})
}

// StatusFor returns the HTTP status for an error kind.
func StatusFor(err error) int {
	switch {
	case apperr.IsValidation(err):
		return http.StatusBadRequest
	case apperr.IsNotFound(err):
		return http.StatusNotFound
	case apperr.IsIllegalTransition(err):
		return http.StatusBadRequest
	case apperr.IsUnauthorized(err):
		return http.StatusUnauthorized
	case apperr.IsForbidden(err):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
