package seed

import "time"

// Config holds configuration for one seeding run.
type Config struct {
	BaseURL   string        // Base URL of the service
	NumEvents int           // Number of events to generate
	NumUsers  int           // Size of the volunteer roster
	Months    int           // How many months back the events spread over
	Workers   int           // Number of concurrent workers
	Timeout   time.Duration // HTTP request timeout
	Verbose   bool          // Enable verbose logging
}

// eventRequest mirrors the POST /events body.
type eventRequest struct {
	PointValue       float64 `json:"point_value"`
	PenalizesAbsence bool    `json:"penalizes_absence"`
	OccursAt         string  `json:"occurs_at"`
	Title            string  `json:"title"`
}

// eventReply carries the fields of the created event the seeder needs.
type eventReply struct {
	ID      int64 `json:"id"`
	Periods struct {
		Month   string `json:"month"`
		Quarter string `json:"quarter"`
	} `json:"periods"`
}

// responseRequest mirrors the POST /events/{id}/responses body.
type responseRequest struct {
	UserID string `json:"user_id"`
	State  string `json:"state"`
}

// leaderboardRow mirrors one GET /leaderboard entry.
type leaderboardRow struct {
	Rank   int    `json:"rank"`
	UserID string `json:"user_id"`
	Result struct {
		Earned     float64 `json:"earned"`
		Possible   float64 `json:"possible"`
		Percentage float64 `json:"percentage"`
	} `json:"result"`
	Compliant bool `json:"compliant"`
}

// Stats holds seeding statistics.
type Stats struct {
	EventsCreated     int
	ResponsesPlanned  int
	ResponsesRecorded int
	ResponsesFailed   int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
