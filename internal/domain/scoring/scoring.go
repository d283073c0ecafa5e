// Package scoring converts a set of events plus a user id into an
// earned/possible/percentage breakdown.
//
// The functions here are pure: callers pre-filter the event set to the
// period they care about, scoring itself knows nothing about calendars.
package scoring

import (
	"github.com/okian/rollcall/internal/domain/model"
)

// silentCredit caps the credit for a SILENT response. A silent user earns at
// most half a point, and never more than the event's own value.
const silentCredit = 0.5

const maxPercent = 100

// Counts is the raw response mix for display. It always reflects what the
// user actually did, even for events the denominator policy excludes.
type Counts struct {
	Made   int `json:"made"`
	Silent int `json:"silent"`
	Missed int `json:"missed"`
}

// Result holds a user's score over one event set.
type Result struct {
	Earned     float64 `json:"earned"`
	Possible   float64 `json:"possible"`
	Percentage float64 `json:"percentage"`
	Counts     Counts  `json:"counts"`
}

// Score accumulates the user's earned and possible points across events.
//
// Zero-point events are informational and contribute nothing. For scoring
// events the denominator depends on the event's absence policy: a
// penalizing event always adds its value to possible, treating a missing
// response like an explicit miss; a non-penalizing event only counts when
// the user responded MADE or SILENT, so absence and misses are invisible
// to the percentage rather than dragging it down.
func Score(userID string, events []model.Event) Result {
	var res Result
	for i := range events {
		e := &events[i]
		if e.PointValue == 0 {
			continue
		}

		switch e.ResponseFor(userID) {
		case model.Made:
			res.Counts.Made++
			res.Possible += e.PointValue
			res.Earned += e.PointValue
		case model.Silent:
			res.Counts.Silent++
			res.Possible += e.PointValue
			res.Earned += min(silentCredit, e.PointValue)
		case model.Missed, model.NoResponse:
			res.Counts.Missed++
			if e.PenalizesAbsence {
				res.Possible += e.PointValue
			}
		}
	}

	if res.Possible > 0 {
		res.Percentage = res.Earned / res.Possible * maxPercent
	}
	return res
}
