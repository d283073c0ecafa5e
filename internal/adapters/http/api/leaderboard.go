// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
)

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps          Dependencies
	maxLimit      int
	minCompliance float64
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps Dependencies, maxLimit int, minCompliance float64) *LeaderboardHandler {
	return &LeaderboardHandler{
		deps:          deps,
		maxLimit:      maxLimit,
		minCompliance: minCompliance,
	}
}

// HandleGetLeaderboard handles GET /leaderboard?period=KEY&limit=N requests.
// The period defaults to the current month and the limit to the configured
// cap; the aggregator always ranks everyone, truncation happens here.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	periodKey := r.URL.Query().Get("period")
	if periodKey == "" {
		periodKey = h.deps.CurrentPeriods().Month
	}

	limit := h.maxLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}

	entries, err := h.deps.LeaderboardPeriod(r.Context(), periodKey)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}

	out := make([]leaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = leaderboardEntry{
			Entry:     e,
			Compliant: e.Result.Percentage >= h.minCompliance,
		}
	}
	writeJSON(w, http.StatusOK, out)
}
