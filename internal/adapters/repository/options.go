package repository

import (
	"time"

	"github.com/okian/rollcall/internal/domain/period"
)

// Option applies a configuration option to the Ledger.
type Option func(*Ledger)

// WithKeyer sets the period keyer used to stamp new events.
func WithKeyer(k *period.Keyer) Option {
	return func(l *Ledger) {
		if k != nil {
			l.keyer = k
		}
	}
}

// WithNow overrides the clock, mainly for tests.
func WithNow(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithPointValues sets the permitted point-value set for new events.
func WithPointValues(values []float64) Option {
	return func(l *Ledger) {
		if len(values) > 0 {
			l.pointValues = values
		}
	}
}
