package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/rollcall/internal/domain/model"
	"github.com/okian/rollcall/internal/domain/period"
	"github.com/okian/rollcall/pkg/metrics"
)

// Ledger implements Store on top of a Backend.
//
// The whole collection lives in memory as the working copy; every mutation
// clones the document, applies the change, saves through the backend and
// only then commits the clone as the new working copy. A failed save
// therefore leaves both memory and storage unchanged. A single mutex
// serializes writers; readers share an RLock and get deep copies out.
type Ledger struct {
	mu      sync.RWMutex
	doc     Document
	index   map[int64]int // event id -> position in doc.Events
	backend Backend

	keyer       *period.Keyer
	now         func() time.Time
	pointValues []float64
}

// NewLedger loads the current document from the backend and returns a
// ready ledger.
func NewLedger(ctx context.Context, backend Backend, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		backend:     backend,
		keyer:       period.NewKeyer(),
		now:         time.Now,
		pointValues: model.DefaultPointValues,
	}
	for _, opt := range opts {
		opt(l)
	}

	doc, err := backend.Load(ctx)
	if err != nil {
		return nil, storageErr("load ledger", err)
	}
	l.doc = doc.Clone()
	l.reindex()
	metrics.UpdateTrackedEvents(len(l.doc.Events))
	return l, nil
}

// reindex rebuilds the id index and normalizes the id counter so it stays
// strictly above every assigned id, even across restarts.
func (l *Ledger) reindex() {
	l.index = make(map[int64]int, len(l.doc.Events))
	for i := range l.doc.Events {
		e := &l.doc.Events[i]
		l.index[e.ID] = i
		if e.ID >= l.doc.NextID {
			l.doc.NextID = e.ID + 1
		}
	}
	if l.doc.NextID < 1 {
		l.doc.NextID = 1
	}
}

func (l *Ledger) allowedPointValue(v float64) bool {
	for _, p := range l.pointValues {
		if v == p {
			return true
		}
	}
	return false
}

// CreateEvent implements Store.
func (l *Ledger) CreateEvent(ctx context.Context, p CreateParams) (model.Event, error) {
	if !l.allowedPointValue(p.PointValue) {
		return model.Event{}, ErrInvalidPointValue
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	created := l.now()
	occurs := p.OccursAt
	if occurs.IsZero() {
		occurs = created
	}
	month, quarter := l.keyer.Keys(occurs)

	next := l.doc.Clone()
	e := model.Event{
		ID:               next.NextID,
		CreatedAt:        created,
		OccursAt:         occurs,
		PointValue:       p.PointValue,
		PenalizesAbsence: p.PenalizesAbsence,
		Periods:          model.PeriodKeys{Month: month, Quarter: quarter},
		Title:            p.Title,
		Detail:           p.Detail,
		Attendance:       make(map[string]model.Response),
	}
	next.NextID++
	next.Events = append(next.Events, e)

	if err := l.save(ctx, next); err != nil {
		return model.Event{}, err
	}

	metrics.RecordEventCreated()
	metrics.UpdateTrackedEvents(len(l.doc.Events))
	return e.Clone(), nil
}

// Event implements Store.
func (l *Ledger) Event(_ context.Context, id int64) (model.Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i, ok := l.index[id]
	if !ok {
		return model.Event{}, ErrNotFound
	}
	return l.doc.Events[i].Clone(), nil
}

// RecordResponse implements Store.
func (l *Ledger) RecordResponse(ctx context.Context, eventID int64, userID string, state model.Response) (model.Event, error) {
	if userID == "" {
		return model.Event{}, ErrEmptyUserID
	}
	if !state.Valid() {
		return model.Event{}, ErrInvalidResponse
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index[eventID]
	if !ok {
		return model.Event{}, ErrNotFound
	}

	if l.doc.Events[i].Attendance[userID] == state {
		// Same state twice is a no-op; skip the backend round trip.
		return l.doc.Events[i].Clone(), nil
	}

	next := l.doc.Clone()
	next.Events[i].Attendance[userID] = state

	if err := l.save(ctx, next); err != nil {
		return model.Event{}, err
	}

	metrics.RecordResponseRecorded(string(state))
	return l.doc.Events[i].Clone(), nil
}

// ResetUserResponses implements Store.
func (l *Ledger) ResetUserResponses(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrEmptyUserID
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.doc.Clone()
	touched := false
	for i := range next.Events {
		if _, ok := next.Events[i].Attendance[userID]; ok {
			delete(next.Events[i].Attendance, userID)
			touched = true
		}
	}
	if !touched {
		return nil
	}

	if err := l.save(ctx, next); err != nil {
		return err
	}

	metrics.RecordUserReset()
	return nil
}

// Events implements Store.
func (l *Ledger) Events(_ context.Context, keep func(model.Event) bool) ([]model.Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.Event, 0, len(l.doc.Events))
	for i := range l.doc.Events {
		if keep == nil || keep(l.doc.Events[i]) {
			out = append(out, l.doc.Events[i].Clone())
		}
	}
	return out, nil
}

// Close releases the backend.
func (l *Ledger) Close() error {
	return l.backend.Close()
}

// save persists next and commits it as the working copy on success.
// Callers must hold the write lock.
func (l *Ledger) save(ctx context.Context, next Document) error {
	start := time.Now()
	err := l.backend.Save(ctx, next)
	metrics.RecordStoreSaveLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return storageErr("save ledger", err)
	}
	l.doc = next
	l.reindex()
	return nil
}
