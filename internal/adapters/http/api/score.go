// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"
)

// ScoreHandler handles per-user score requests.
type ScoreHandler struct {
	deps          Dependencies
	minCompliance float64
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps Dependencies, minCompliance float64) *ScoreHandler {
	return &ScoreHandler{deps: deps, minCompliance: minCompliance}
}

// HandleGetScore handles GET /score/{user_id}?period=KEY requests.
// The period may be a month ("2026-02") or a quarter ("2026-Q1") key;
// it defaults to the current month.
func (h *ScoreHandler) HandleGetScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_score"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	userID := strings.TrimPrefix(r.URL.Path, "/score/")
	if userID == "" || strings.Contains(userID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	periodKey := r.URL.Query().Get("period")
	if periodKey == "" {
		periodKey = h.deps.CurrentPeriods().Month
	}

	result, err := h.deps.ScorePeriod(r.Context(), userID, periodKey)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse{
		UserID:    userID,
		Period:    periodKey,
		Result:    result,
		Compliant: result.Percentage >= h.minCompliance,
	})
}
