// Package app provides the core business service that implements
// the dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/okian/rollcall/internal/adapters/repository"
	"github.com/okian/rollcall/internal/config"
	"github.com/okian/rollcall/internal/domain/model"
	"github.com/okian/rollcall/internal/domain/period"
	"github.com/okian/rollcall/internal/domain/rank"
	"github.com/okian/rollcall/internal/domain/scoring"
	"github.com/okian/rollcall/pkg/logger"
)

// Service wires the attendance ledger, period keyer and scoring together
// behind one lifecycle.
type Service struct {
	mu sync.RWMutex

	store repository.Store
	keyer *period.Keyer

	// Configuration
	backend     string
	dataFile    string
	sqliteDSN   string
	timezone    string
	pointValues []float64
	now         func() time.Time

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBackend selects the storage backend by name.
func WithBackend(kind string) Option {
	return func(s *Service) {
		if kind != "" {
			s.backend = kind
		}
	}
}

// WithDataFile sets the JSON ledger path for the file backend.
func WithDataFile(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dataFile = path
		}
	}
}

// WithSQLiteDSN sets the database path for the sqlite backend.
func WithSQLiteDSN(dsn string) Option {
	return func(s *Service) {
		if dsn != "" {
			s.sqliteDSN = dsn
		}
	}
}

// WithTimezone sets the IANA reference zone for period bucketing.
func WithTimezone(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.timezone = name
		}
	}
}

// WithPointValues sets the permitted point-value set for new events.
func WithPointValues(values []float64) Option {
	return func(s *Service) {
		if len(values) > 0 {
			s.pointValues = values
		}
	}
}

// WithStore injects a prebuilt store, mainly for tests. Start skips
// backend construction when a store is already present.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithNow overrides the clock used for "current period" reads.
func WithNow(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		backend:     config.BackendMemory,
		dataFile:    "rollcall.json",
		sqliteDSN:   "rollcall.db",
		timezone:    "UTC",
		pointValues: model.DefaultPointValues,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the keyer and the storage backend.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	loc, err := time.LoadLocation(s.timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", s.timezone, err)
	}
	s.keyer = period.NewKeyer(period.WithLocation(loc))

	if s.store == nil {
		backend, err := s.newBackend(ctx)
		if err != nil {
			return err
		}
		ledger, err := repository.NewLedger(ctx, backend,
			repository.WithKeyer(s.keyer),
			repository.WithPointValues(s.pointValues),
		)
		if err != nil {
			return err
		}
		s.store = ledger
	}

	s.started = true
	s.logger.Info(ctx, "attendance service started",
		logger.String("backend", s.backend),
		logger.String("timezone", s.timezone),
	)
	return nil
}

func (s *Service) newBackend(ctx context.Context) (repository.Backend, error) {
	switch s.backend {
	case config.BackendMemory:
		return repository.NewMemoryBackend(), nil
	case config.BackendFile:
		return repository.NewFileBackend(s.dataFile), nil
	case config.BackendSQLite:
		return repository.NewSQLiteBackend(ctx, s.sqliteDSN)
	default:
		return nil, fmt.Errorf("unknown backend %q", s.backend)
	}
}

// Stop releases the storage backend.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if closer, ok := s.store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	s.started = false
	s.logger.Info(context.Background(), "attendance service stopped")
}

// CreateEvent records a new event in the ledger.
func (s *Service) CreateEvent(ctx context.Context, p repository.CreateParams) (model.Event, error) {
	return s.store.CreateEvent(ctx, p)
}

// Event returns one event by id.
func (s *Service) Event(ctx context.Context, id int64) (model.Event, error) {
	return s.store.Event(ctx, id)
}

// RecordResponse upserts a user's response on an event.
func (s *Service) RecordResponse(ctx context.Context, eventID int64, userID string, state model.Response) (model.Event, error) {
	return s.store.RecordResponse(ctx, eventID, userID, state)
}

// ResetUserResponses deletes a user's responses across all events.
func (s *Service) ResetUserResponses(ctx context.Context, userID string) error {
	return s.store.ResetUserResponses(ctx, userID)
}

// PeriodKeys buckets a timestamp in the service's reference zone.
func (s *Service) PeriodKeys(t time.Time) model.PeriodKeys {
	month, quarter := s.keyer.Keys(t)
	return model.PeriodKeys{Month: month, Quarter: quarter}
}

// CurrentPeriods returns the keys for the present moment.
func (s *Service) CurrentPeriods() model.PeriodKeys {
	return s.PeriodKeys(s.now())
}

// PeriodEvents returns the events belonging to a month or quarter key.
// Quarter keys carry a "-Q" infix ("2026-Q1"), month keys do not.
func (s *Service) PeriodEvents(ctx context.Context, periodKey string) ([]model.Event, error) {
	return s.store.Events(ctx, periodFilter(periodKey))
}

// ScorePeriod computes one user's score over a month or quarter.
func (s *Service) ScorePeriod(ctx context.Context, userID, periodKey string) (scoring.Result, error) {
	events, err := s.PeriodEvents(ctx, periodKey)
	if err != nil {
		return scoring.Result{}, err
	}
	return scoring.Score(userID, events), nil
}

// LeaderboardPeriod ranks every responding user over a month or quarter.
// The full ranking is returned; callers truncate for presentation.
func (s *Service) LeaderboardPeriod(ctx context.Context, periodKey string) ([]rank.Entry, error) {
	events, err := s.PeriodEvents(ctx, periodKey)
	if err != nil {
		return nil, err
	}
	return rank.Leaderboard(events), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":  s.started,
		"backend":  s.backend,
		"timezone": s.timezone,
	}
	if !s.started {
		return stats
	}

	events, err := s.store.Events(context.Background(), nil)
	if err != nil {
		stats["error"] = err.Error()
		return stats
	}

	users := make(map[string]struct{})
	for i := range events {
		for user := range events[i].Attendance {
			users[user] = struct{}{}
		}
	}
	stats["totalEvents"] = len(events)
	stats["totalUsers"] = len(users)
	return stats
}

func periodFilter(key string) func(model.Event) bool {
	if strings.Contains(key, "-Q") {
		return repository.InQuarter(key)
	}
	return repository.InMonth(key)
}
