// Package repository owns the durable event collection and is the only
// component that mutates persisted state.
package repository

import (
	"context"
	"time"

	"github.com/okian/rollcall/internal/domain/model"
)

// CreateParams carries the caller-supplied fields for a new event.
// A zero OccursAt defaults to the creation time.
type CreateParams struct {
	PointValue       float64
	PenalizesAbsence bool
	OccursAt         time.Time
	Title            string
	Detail           string
}

// Store provides read/write access to the event collection.
//
// Mutations are serialized: each one is a single read-modify-write cycle,
// so concurrent responses for different users on the same event both
// persist. Reads may run concurrently and return deep copies, never a
// half-applied record.
type Store interface {
	// CreateEvent assigns the next id, stamps creation time and period
	// keys, persists and returns the new event.
	CreateEvent(ctx context.Context, p CreateParams) (model.Event, error)

	// Event returns the event with the given id, or ErrNotFound.
	Event(ctx context.Context, id int64) (model.Event, error)

	// RecordResponse upserts attendance[userID] = state and returns the
	// updated event. Last write wins; repeating the same state is a no-op
	// in effect. Returns ErrNotFound for an unknown event id.
	RecordResponse(ctx context.Context, eventID int64, userID string, state model.Response) (model.Event, error)

	// ResetUserResponses removes the user's entry from every event's
	// attendance map. Event definitions are untouched.
	ResetUserResponses(ctx context.Context, userID string) error

	// Events returns all events matching keep, in ascending id order.
	// A nil keep returns everything.
	Events(ctx context.Context, keep func(model.Event) bool) ([]model.Event, error)
}

// Document is the full persisted state: the id counter plus every event.
type Document struct {
	NextID int64         `json:"nextId"`
	Events []model.Event `json:"events"`
}

// Clone deep-copies the document so backends and callers never alias the
// ledger's working state.
func (d Document) Clone() Document {
	out := Document{NextID: d.NextID, Events: make([]model.Event, len(d.Events))}
	for i := range d.Events {
		out.Events[i] = d.Events[i].Clone()
	}
	return out
}

// Backend persists the document as one atomic unit. Load on an empty
// backend returns a zero document, not an error.
type Backend interface {
	Load(ctx context.Context) (Document, error)
	Save(ctx context.Context, doc Document) error
	Close() error
}

// InMonth builds an event predicate matching a month key.
func InMonth(key string) func(model.Event) bool {
	return func(e model.Event) bool { return e.Periods.Month == key }
}

// InQuarter builds an event predicate matching a quarter key.
func InQuarter(key string) func(model.Event) bool {
	return func(e model.Event) bool { return e.Periods.Quarter == key }
}
