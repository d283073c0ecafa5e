// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/okian/rollcall/internal/adapters/repository"
	"github.com/okian/rollcall/internal/domain/model"
	"github.com/okian/rollcall/internal/domain/rank"
	"github.com/okian/rollcall/internal/domain/scoring"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	CreateEvent(ctx context.Context, p repository.CreateParams) (model.Event, error)
	Event(ctx context.Context, id int64) (model.Event, error)
	RecordResponse(ctx context.Context, eventID int64, userID string, state model.Response) (model.Event, error)
	ResetUserResponses(ctx context.Context, userID string) error
	ScorePeriod(ctx context.Context, userID, periodKey string) (scoring.Result, error)
	LeaderboardPeriod(ctx context.Context, periodKey string) ([]rank.Entry, error)
	CurrentPeriods() model.PeriodKeys
	PeriodKeys(t time.Time) model.PeriodKeys
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	eventsHandler      *EventsHandler
	usersHandler       *UsersHandler
	scoreHandler       *ScoreHandler
	leaderboardHandler *LeaderboardHandler
	periodsHandler     *PeriodsHandler
}

// Default presentation policy values.
const (
	defaultLeaderboardLimit = 25
	defaultMinCompliance    = 40
)

// ServerOption applies a configuration option to the Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	leaderboardLimit int
	minCompliance    float64
}

// WithLeaderboardLimit caps GET /leaderboard?limit.
func WithLeaderboardLimit(n int) ServerOption {
	return func(c *serverConfig) {
		if n > 0 {
			c.leaderboardLimit = n
		}
	}
}

// WithMinCompliance sets the pass/fail percentage threshold surfaced on
// score and leaderboard responses.
func WithMinCompliance(pct float64) ServerOption {
	return func(c *serverConfig) {
		if pct >= 0 && pct <= 100 {
			c.minCompliance = pct
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	cfg := &serverConfig{
		leaderboardLimit: defaultLeaderboardLimit,
		minCompliance:    defaultMinCompliance,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		eventsHandler:      NewEventsHandler(deps),
		usersHandler:       NewUsersHandler(deps),
		scoreHandler:       NewScoreHandler(deps, cfg.minCompliance),
		leaderboardHandler: NewLeaderboardHandler(deps, cfg.leaderboardLimit, cfg.minCompliance),
		periodsHandler:     NewPeriodsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandleEvents, "events"))
	mux.HandleFunc("/events/", MetricsMiddleware(s.eventsHandler.HandleEvent, "event"))
	mux.HandleFunc("/users/", MetricsMiddleware(s.usersHandler.HandleUser, "users"))
	mux.HandleFunc("/score/", MetricsMiddleware(s.scoreHandler.HandleGetScore, "score"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/periods", MetricsMiddleware(s.periodsHandler.HandleGetPeriods, "periods"))
}

// createEventRequest mirrors the POST /events body.
type createEventRequest struct {
	PointValue       *float64 `json:"point_value"`
	PenalizesAbsence bool     `json:"penalizes_absence"`
	OccursAt         string   `json:"occurs_at,omitempty"`
	Title            string   `json:"title,omitempty"`
	Detail           string   `json:"detail,omitempty"`
}

func (r createEventRequest) validate() error {
	if r.PointValue == nil {
		return errors.New("missing point_value")
	}
	if *r.PointValue < 0 {
		return errors.New("point_value must be non-negative")
	}
	if r.OccursAt != "" {
		if _, err := time.Parse(time.RFC3339, r.OccursAt); err != nil {
			return errors.New("invalid occurs_at; must be RFC3339")
		}
	}
	return nil
}

// responseRequest mirrors the POST /events/{id}/responses body.
type responseRequest struct {
	UserID string `json:"user_id"`
	State  string `json:"state"`
}

func (r responseRequest) validate() error {
	switch {
	case strings.TrimSpace(r.UserID) == "":
		return errors.New("missing user_id")
	case !model.Response(r.State).Valid():
		return errors.New("invalid state; must be MADE, SILENT or MISSED")
	}
	return nil
}

// scoreResponse decorates a scoring result with the compliance flag.
type scoreResponse struct {
	UserID    string         `json:"user_id"`
	Period    string         `json:"period"`
	Result    scoring.Result `json:"result"`
	Compliant bool           `json:"compliant"`
}

// leaderboardEntry decorates a ranked entry with the compliance flag.
type leaderboardEntry struct {
	rank.Entry
	Compliant bool `json:"compliant"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates ledger errors into HTTP statuses.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	case errors.Is(err, repository.ErrInvalidPointValue),
		errors.Is(err, repository.ErrInvalidResponse),
		errors.Is(err, repository.ErrEmptyUserID):
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
