package handler

import (
	"net/http"

	"github.com/termbase/termbase/internal/metrics"
)

// MetricsHandler exposes operation counters.
type MetricsHandler struct {
	recorder metrics.Recorder
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(recorder metrics.Recorder) *MetricsHandler {
	return &MetricsHandler{recorder: recorder}
}

// Snapshot handles GET /metrics, returning all operation counters as
// a flat JSON object keyed "operation:outcome".
func (h *MetricsHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.recorder.Snapshot())
}
