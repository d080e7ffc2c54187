package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/termbase/termbase/internal/handler/dto"
	"github.com/termbase/termbase/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v (body %q)", err, rec.Body.String())
	}
	return resp
}

func TestRoot(t *testing.T) {
	h := New()
	rec := httptest.NewRecorder()
	h.Root(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("expected application/json, got %s", got)
	}
}

func TestNotFound(t *testing.T) {
	h := New()
	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Error.Code != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %s", resp.Error.Code)
	}
}

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unauthenticated", service.ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"invalid_credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"forbidden", service.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"not_found", service.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"merged", service.ErrNotFoundOrUnauthorized, http.StatusNotFound, "NOT_FOUND_OR_UNAUTHORIZED"},
		{"internal", errors.New("pool exhausted"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondServiceError(rec, discardLogger(), test.err)

			if rec.Code != test.wantStatus {
				t.Errorf("expected status %d, got %d", test.wantStatus, rec.Code)
			}
			if resp := decodeError(t, rec); resp.Error.Code != test.wantCode {
				t.Errorf("expected code %s, got %s", test.wantCode, resp.Error.Code)
			}
		})
	}
}

func TestRespondServiceError_ValidationFields(t *testing.T) {
	err := &service.ValidationError{Fields: map[string]string{
		"name": "name is required",
	}}

	rec := httptest.NewRecorder()
	respondServiceError(rec, discardLogger(), err)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeError(t, rec)
	if resp.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR, got %s", resp.Error.Code)
	}
	if resp.Error.Fields["name"] != "name is required" {
		t.Errorf("expected field message, got %v", resp.Error.Fields)
	}
}

func TestRespondServiceError_WrappedErrors(t *testing.T) {
	// Services wrap sentinels; the mapping must survive wrapping.
	wrapped := errors.Join(errors.New("context"), service.ErrForbidden)

	rec := httptest.NewRecorder()
	respondServiceError(rec, discardLogger(), wrapped)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for wrapped ErrForbidden, got %d", rec.Code)
	}
}

func TestRespondServiceError_NoExistenceLeak(t *testing.T) {
	// The merged outcome must not say which of "missing" or "not
	// yours" happened.
	rec := httptest.NewRecorder()
	respondServiceError(rec, discardLogger(), service.ErrNotFoundOrUnauthorized)

	resp := decodeError(t, rec)
	if resp.Error.Message != "Resource not found or unauthorized" {
		t.Errorf("unexpected message: %s", resp.Error.Message)
	}
}
