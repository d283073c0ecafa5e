package seed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/rollcall/pkg/logger"
)

const leaderboardLimit = 10

// Run seeds the service with a roster, a season of events and per-volunteer
// responses, then fetches the current month's leaderboard as a smoke check.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}
	client := newHTTPClient(config.Timeout)
	log := logger.Named("seed")

	roster := generateRoster(ctx, config)
	requests := generateEvents(ctx, config)

	planned := make([]plannedResponse, 0, len(requests)*len(roster))
	for _, req := range requests {
		var created eventReply
		status, err := client.postJSON(ctx, config.BaseURL+"/events", req, &created)
		if err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		if status != http.StatusCreated {
			return fmt.Errorf("create event: unexpected status %d", status)
		}
		stats.EventsCreated++

		for _, v := range roster {
			if state := pickResponse(v); state != "" {
				planned = append(planned, plannedResponse{eventID: created.ID, userID: v.userID, state: state})
			}
		}
		if config.Verbose {
			log.Debug(ctx, "created event",
				logger.Int64("id", created.ID),
				logger.String("month", created.Periods.Month))
		}
	}
	log.Info(ctx, "events created", logger.Int("count", stats.EventsCreated))

	submitResponses(ctx, config, client, planned, stats)
	log.Info(ctx, "responses recorded",
		logger.Int("recorded", stats.ResponsesRecorded),
		logger.Int("failed", stats.ResponsesFailed))

	if err := showLeaderboard(ctx, config, client, log); err != nil {
		return err
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	log.Info(ctx, "seeding complete",
		logger.Int("events", stats.EventsCreated),
		logger.Int("responses", stats.ResponsesRecorded),
		logger.String("duration", stats.Duration.Round(time.Millisecond).String()))

	if stats.ResponsesFailed > 0 {
		return fmt.Errorf("%d of %d responses failed", stats.ResponsesFailed, stats.ResponsesPlanned)
	}
	return nil
}

func showLeaderboard(ctx context.Context, config *Config, client *httpClient, log logger.Logger) error {
	endpoint := fmt.Sprintf("%s/leaderboard?limit=%d", config.BaseURL, leaderboardLimit)

	var rows []leaderboardRow
	if err := client.getJSON(ctx, endpoint, &rows); err != nil {
		return fmt.Errorf("fetch leaderboard: %w", err)
	}
	for _, row := range rows {
		log.Info(ctx, "leaderboard entry",
			logger.Int("rank", row.Rank),
			logger.String("user", row.UserID),
			logger.Float64("percentage", row.Result.Percentage),
			logger.Any("compliant", row.Compliant))
	}
	return nil
}
