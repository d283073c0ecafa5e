package seed

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/okian/rollcall/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	profileDivisor     = 4
	pointValueDivisor  = 3
	hourSpread         = 14
	firstHour          = 7
)

// Volunteer reliability profiles. The split keeps leaderboards interesting:
// most rosters end up with a mix of near-perfect and flaky members.
const (
	caseDependable = 0
	caseRegular    = 1
	caseFlaky      = 2
	caseGhost      = 3
)

// Per-profile chance of showing up, then of at least calling out.
var profileOdds = map[int64][2]float64{
	caseDependable: {0.9, 0.95},
	caseRegular:    {0.7, 0.8},
	caseFlaky:      {0.4, 0.6},
	caseGhost:      {0.1, 0.3},
}

var eventTitles = []string{
	"pump drill",
	"station cleanup",
	"radio training",
	"fundraiser shift",
	"equipment check",
	"community demo",
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

func randomInt(max int64) int64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(max))
	return n.Int64()
}

// volunteer pairs a generated user id with a reliability profile.
type volunteer struct {
	userID  string
	profile int64
}

// generateRoster creates the volunteer roster with unique user ids.
func generateRoster(ctx context.Context, config *Config) []volunteer {
	roster := make([]volunteer, config.NumUsers)
	for i := range roster {
		roster[i] = volunteer{
			userID:  uuid.New().String(),
			profile: randomInt(profileDivisor),
		}
	}
	logger.Get().Info(ctx, "generated roster", logger.Int("users", len(roster)))
	return roster
}

// generateEvents creates event requests spread over the configured window.
func generateEvents(ctx context.Context, config *Config) []eventRequest {
	now := time.Now().UTC()
	window := time.Duration(config.Months) * 30 * 24 * time.Hour

	events := make([]eventRequest, config.NumEvents)
	for i := range events {
		occursAt := now.Add(-time.Duration(getRandomFloat() * float64(window)))
		occursAt = time.Date(occursAt.Year(), occursAt.Month(), occursAt.Day(),
			firstHour+int(randomInt(hourSpread)), 0, 0, 0, time.UTC)

		events[i] = eventRequest{
			PointValue:       pickPointValue(),
			PenalizesAbsence: randomInt(2) == 0,
			OccursAt:         occursAt.Format(time.RFC3339),
			Title:            eventTitles[int(randomInt(int64(len(eventTitles))))],
		}
	}
	logger.Get().Info(ctx, "generated events", logger.Int("count", len(events)))
	return events
}

func pickPointValue() float64 {
	switch randomInt(pointValueDivisor) {
	case 0:
		return 0
	case 1:
		return 0.5
	default:
		return 1
	}
}

// pickResponse rolls one volunteer's response to one event. The empty string
// means the volunteer stays absent.
func pickResponse(v volunteer) string {
	odds := profileOdds[v.profile]
	roll := getRandomFloat()
	switch {
	case roll < odds[0]:
		return "MADE"
	case roll < odds[1]:
		return "SILENT"
	case roll < odds[1]+(1-odds[1])/2:
		return "MISSED"
	default:
		return ""
	}
}
