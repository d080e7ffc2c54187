// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/termbase/termbase/internal/handler/dto"
	"github.com/termbase/termbase/internal/service"
)

// Handler serves the root info endpoint and router fallbacks.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Root is the service info endpoint.
// GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "termbase",
		"version": "1.0.0",
	})
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found", nil)
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string, fields map[string]string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: dto.ErrorBody{
			Code:    code,
			Message: message,
			Fields:  fields,
		},
	})
}

// respondServiceError maps service errors to wire codes. This is the
// one place the error taxonomy is translated to HTTP.
func respondServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", ve.Fields)
	case errors.Is(err, service.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		// Same shape for unknown email and wrong password.
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Access denied", nil)
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found", nil)
	case errors.Is(err, service.ErrNotFoundOrUnauthorized):
		writeError(w, http.StatusNotFound, "NOT_FOUND_OR_UNAUTHORIZED", "Resource not found or unauthorized", nil)
	default:
		logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred, please retry", nil)
	}
}

// decodeJSON parses a request body into dst, rejecting unknown garbage
// with a uniform validation response.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body", nil)
		return false
	}
	return true
}
