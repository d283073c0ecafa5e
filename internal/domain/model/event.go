// Package model contains domain models passed between layers.
package model

import "time"

// Response is a user's declared participation in an event.
type Response string

// Terminal response states. NoResponse is the implicit fourth state: it is
// never stored in an attendance map, a missing key means the user has not
// responded yet.
const (
	Made       Response = "MADE"
	Silent     Response = "SILENT"
	Missed     Response = "MISSED"
	NoResponse Response = ""
)

// Valid reports whether r is one of the storable response states.
func (r Response) Valid() bool {
	switch r {
	case Made, Silent, Missed:
		return true
	default:
		return false
	}
}

// PeriodKeys is the calendar-bucket snapshot stamped on an event at creation.
// It is never recomputed, so later time-zone or policy changes cannot move
// historical events between periods.
type PeriodKeys struct {
	Month   string `json:"month"`
	Quarter string `json:"quarter"`
}

// Event represents one occurrence (a call, a drill) members are expected to
// respond to. Attendance is the only field that changes after creation.
type Event struct {
	ID               int64               `json:"id"`
	CreatedAt        time.Time           `json:"createdAt"`
	OccursAt         time.Time           `json:"occursAt"`
	PointValue       float64             `json:"pointValue"`
	PenalizesAbsence bool                `json:"penalizesAbsence"`
	Periods          PeriodKeys          `json:"periods"`
	Title            string              `json:"title,omitempty"`
	Detail           string              `json:"detail,omitempty"`
	Attendance       map[string]Response `json:"attendance"`
}

// ResponseFor returns the user's recorded response, or NoResponse when the
// user has not interacted with the event.
func (e *Event) ResponseFor(userID string) Response {
	if r, ok := e.Attendance[userID]; ok {
		return r
	}
	return NoResponse
}

// Clone returns a deep copy so readers never share the attendance map with
// the store's mutable state.
func (e Event) Clone() Event {
	out := e
	out.Attendance = make(map[string]Response, len(e.Attendance))
	for user, r := range e.Attendance {
		out.Attendance[user] = r
	}
	return out
}

// DefaultPointValues is the permitted point-value set unless configured
// otherwise: informational (0), half-weight (0.5) and full-weight (1) events.
var DefaultPointValues = []float64{0, 0.5, 1}
