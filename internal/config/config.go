// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer sources.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Backend names accepted by the storage selector.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Timezone is the IANA name of the fixed reference zone used for
	// period bucketing, e.g. "America/New_York".
	Timezone string `koanf:"timezone"`

	// Backend selects the storage backend: memory, file or sqlite.
	Backend string `koanf:"backend"`

	// DataFile is the JSON ledger path for the file backend.
	DataFile string `koanf:"data_file"`

	// SQLiteDSN is the database path/DSN for the sqlite backend.
	SQLiteDSN string `koanf:"sqlite_dsn"`

	// LeaderboardLimit caps how many ranked entries the HTTP layer returns.
	LeaderboardLimit int `koanf:"leaderboard_limit"`

	// MinCompliancePercent marks ranked entries pass/fail in responses.
	// Scoring itself is threshold-agnostic.
	MinCompliancePercent float64 `koanf:"min_compliance_percent"`

	// PointValues is the permitted point-value set for new events.
	PointValues []float64 `koanf:"point_values"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		Timezone:             "UTC",
		Backend:              BackendFile,
		DataFile:             "rollcall.json",
		SQLiteDSN:            "rollcall.db",
		LeaderboardLimit:     25,
		MinCompliancePercent: 40,
		PointValues:          []float64{0, 0.5, 1},
	}
}
