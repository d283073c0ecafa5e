package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure-Go sqlite driver

	"github.com/okian/rollcall/internal/domain/model"
)

// SQLiteBackend persists the document in a local SQLite database. The
// whole document is written in one transaction, keeping the atomic
// get/put contract of Backend.
type SQLiteBackend struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS ledger_meta (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    next_id INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS event (
    id INTEGER PRIMARY KEY,
    created_at TEXT NOT NULL,
    occurs_at TEXT NOT NULL,
    point_value REAL NOT NULL CHECK (point_value >= 0),
    penalizes_absence INTEGER NOT NULL,
    month TEXT NOT NULL,
    quarter TEXT NOT NULL,
    title TEXT NOT NULL DEFAULT '',
    detail TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_event_month ON event(month);
CREATE INDEX IF NOT EXISTS idx_event_quarter ON event(quarter);

CREATE TABLE IF NOT EXISTS attendance (
    event_id INTEGER NOT NULL REFERENCES event(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    state TEXT NOT NULL CHECK (state IN ('MADE', 'SILENT', 'MISSED')),
    PRIMARY KEY (event_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_attendance_user ON attendance(user_id);
`

// NewSQLiteBackend opens (or creates) the database at dsn and ensures the
// schema exists. Safe to call against an existing database.
func NewSQLiteBackend(ctx context.Context, dsn string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", dsn, err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

// Load implements Backend.
func (b *SQLiteBackend) Load(ctx context.Context) (Document, error) {
	var doc Document

	err := b.db.QueryRowContext(ctx, `SELECT next_id FROM ledger_meta WHERE id = 1`).Scan(&doc.NextID)
	if err != nil && err != sql.ErrNoRows {
		return Document{}, fmt.Errorf("load meta: %w", err)
	}

	rows, err := b.db.QueryContext(ctx, `
		SELECT id, created_at, occurs_at, point_value, penalizes_absence, month, quarter, title, detail
		FROM event ORDER BY id`)
	if err != nil {
		return Document{}, fmt.Errorf("load events: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]int)
	for rows.Next() {
		var (
			e                   model.Event
			createdAt, occursAt string
			penalizes           int
		)
		if err := rows.Scan(&e.ID, &createdAt, &occursAt, &e.PointValue, &penalizes,
			&e.Periods.Month, &e.Periods.Quarter, &e.Title, &e.Detail); err != nil {
			return Document{}, fmt.Errorf("scan event: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return Document{}, fmt.Errorf("parse created_at: %w", err)
		}
		if e.OccursAt, err = time.Parse(time.RFC3339Nano, occursAt); err != nil {
			return Document{}, fmt.Errorf("parse occurs_at: %w", err)
		}
		e.PenalizesAbsence = penalizes != 0
		e.Attendance = make(map[string]model.Response)
		doc.Events = append(doc.Events, e)
		byID[e.ID] = len(doc.Events) - 1
	}
	if err := rows.Err(); err != nil {
		return Document{}, fmt.Errorf("load events: %w", err)
	}

	arows, err := b.db.QueryContext(ctx, `SELECT event_id, user_id, state FROM attendance`)
	if err != nil {
		return Document{}, fmt.Errorf("load attendance: %w", err)
	}
	defer arows.Close()

	for arows.Next() {
		var (
			eventID int64
			userID  string
			state   string
		)
		if err := arows.Scan(&eventID, &userID, &state); err != nil {
			return Document{}, fmt.Errorf("scan attendance: %w", err)
		}
		if i, ok := byID[eventID]; ok {
			doc.Events[i].Attendance[userID] = model.Response(state)
		}
	}
	if err := arows.Err(); err != nil {
		return Document{}, fmt.Errorf("load attendance: %w", err)
	}

	return doc, nil
}

// Save implements Backend. The previous contents are replaced wholesale
// inside a single transaction.
func (b *SQLiteBackend) Save(ctx context.Context, doc Document) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM attendance`); err != nil {
		return fmt.Errorf("clear attendance: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM event`); err != nil {
		return fmt.Errorf("clear events: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO ledger_meta (id, next_id) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET next_id = excluded.next_id`, doc.NextID); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	insertEvent, err := tx.PrepareContext(ctx, `
		INSERT INTO event (id, created_at, occurs_at, point_value, penalizes_absence, month, quarter, title, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare event insert: %w", err)
	}
	defer insertEvent.Close()

	insertAttendance, err := tx.PrepareContext(ctx, `
		INSERT INTO attendance (event_id, user_id, state) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare attendance insert: %w", err)
	}
	defer insertAttendance.Close()

	for i := range doc.Events {
		e := &doc.Events[i]
		penalizes := 0
		if e.PenalizesAbsence {
			penalizes = 1
		}
		if _, err := insertEvent.ExecContext(ctx, e.ID,
			e.CreatedAt.Format(time.RFC3339Nano), e.OccursAt.Format(time.RFC3339Nano),
			e.PointValue, penalizes, e.Periods.Month, e.Periods.Quarter, e.Title, e.Detail); err != nil {
			return fmt.Errorf("insert event %d: %w", e.ID, err)
		}
		for userID, state := range e.Attendance {
			if _, err := insertAttendance.ExecContext(ctx, e.ID, userID, string(state)); err != nil {
				return fmt.Errorf("insert attendance %d/%s: %w", e.ID, userID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Close implements Backend.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
