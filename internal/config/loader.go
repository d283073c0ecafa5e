package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if ROLLCALL_CONFIG is set
//  3. env (prefix ROLLCALL_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("ROLLCALL_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: ROLLCALL_ADDR, ROLLCALL_DATA_FILE, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("ROLLCALL_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "rollcall_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.Backend {
	case BackendMemory, BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}
	if c.Backend == BackendFile && c.DataFile == "" {
		return fmt.Errorf("%w: data_file must not be empty", ErrInvalidConfig)
	}
	if c.Backend == BackendSQLite && c.SQLiteDSN == "" {
		return fmt.Errorf("%w: sqlite_dsn must not be empty", ErrInvalidConfig)
	}
	if c.LeaderboardLimit < 1 {
		return fmt.Errorf("%w: leaderboard_limit must be positive", ErrInvalidConfig)
	}
	if c.MinCompliancePercent < 0 || c.MinCompliancePercent > 100 {
		return fmt.Errorf("%w: min_compliance_percent must be within [0, 100]", ErrInvalidConfig)
	}
	if len(c.PointValues) == 0 {
		return fmt.Errorf("%w: point_values must not be empty", ErrInvalidConfig)
	}
	for _, v := range c.PointValues {
		if v < 0 {
			return fmt.Errorf("%w: point values must be non-negative", ErrInvalidConfig)
		}
	}
	return nil
}
