package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLogger_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := RequestID(Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rpc/glossary.create", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}

	if entry["msg"] != "http_request" {
		t.Errorf("expected msg http_request, got %v", entry["msg"])
	}
	if entry["method"] != "POST" {
		t.Errorf("expected method POST, got %v", entry["method"])
	}
	if entry["path"] != "/api/v1/rpc/glossary.create" {
		t.Errorf("expected path, got %v", entry["path"])
	}
	if entry["status_code"] != float64(http.StatusCreated) {
		t.Errorf("expected status 201, got %v", entry["status_code"])
	}
	if entry["request_id"] == "" {
		t.Error("expected a request_id")
	}
}

func TestResponseWriter_DefaultStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	// Handler writes a body without calling WriteHeader.
	handler := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("parse log: %v", err)
	}
	if entry["status_code"] != float64(http.StatusOK) {
		t.Errorf("expected implicit 200, got %v", entry["status_code"])
	}
}

func TestResponseWriter_DoubleWriteHeader(t *testing.T) {
	rw := wrapResponseWriter(httptest.NewRecorder())
	rw.WriteHeader(http.StatusTeapot)
	rw.WriteHeader(http.StatusOK)

	if rw.status != http.StatusTeapot {
		t.Errorf("expected first status to win, got %d", rw.status)
	}
}
