// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"time"
)

// PeriodsHandler exposes period bucketing for a timestamp.
type PeriodsHandler struct {
	deps Dependencies
}

// NewPeriodsHandler creates a new periods handler.
func NewPeriodsHandler(deps Dependencies) *PeriodsHandler {
	return &PeriodsHandler{deps: deps}
}

// HandleGetPeriods handles GET /periods?ts=RFC3339 requests. Without ts it
// returns the current month and quarter keys.
func (h *PeriodsHandler) HandleGetPeriods(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_periods"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	tsStr := r.URL.Query().Get("ts")
	if tsStr == "" {
		writeJSON(w, http.StatusOK, h.deps.CurrentPeriods())
		return
	}
	ts, err := time.Parse(time.RFC3339, tsStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.PeriodKeys(ts))
}
