// Package period derives calendar-bucket keys from timestamps.
//
// Keys are computed in one fixed reference time zone so the same instant
// always lands in the same bucket regardless of the process-local zone.
// A boundary instant (midnight on the first of a month) belongs to the
// period it starts.
package period

import (
	"fmt"
	"time"
)

// Keyer buckets timestamps into month and quarter keys.
type Keyer struct {
	loc *time.Location
}

// Option applies a configuration option to the Keyer.
type Option func(*Keyer)

// WithLocation sets the reference time zone for bucketing.
func WithLocation(loc *time.Location) Option {
	return func(k *Keyer) {
		if loc != nil {
			k.loc = loc
		}
	}
}

// NewKeyer creates a Keyer. The default reference zone is UTC.
func NewKeyer(opts ...Option) *Keyer {
	k := &Keyer{loc: time.UTC}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Location returns the reference zone the keyer buckets in.
func (k *Keyer) Location() *time.Location {
	return k.loc
}

// Month returns a sortable month key, e.g. "2026-02".
func (k *Keyer) Month(t time.Time) string {
	return t.In(k.loc).Format("2006-01")
}

// Quarter returns a quarter key, e.g. "2026-Q1".
func (k *Keyer) Quarter(t time.Time) string {
	local := t.In(k.loc)
	q := (int(local.Month())-1)/3 + 1
	return fmt.Sprintf("%d-Q%d", local.Year(), q)
}

// Keys returns both bucket identifiers for t.
func (k *Keyer) Keys(t time.Time) (month, quarter string) {
	return k.Month(t), k.Quarter(t)
}
