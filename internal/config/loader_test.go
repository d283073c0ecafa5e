package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/rollcall/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"ROLLCALL_CONFIG",
		"ROLLCALL_ADDR",
		"ROLLCALL_LOG_LEVEL",
		"ROLLCALL_TIMEZONE",
		"ROLLCALL_BACKEND",
		"ROLLCALL_DATA_FILE",
		"ROLLCALL_SQLITE_DSN",
		"ROLLCALL_LEADERBOARD_LIMIT",
		"ROLLCALL_MIN_COMPLIANCE_PERCENT",
	} {
		_ = os.Unsetenv(key)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.Timezone, convey.ShouldEqual, "UTC")
				convey.So(cfg.Backend, convey.ShouldEqual, config.BackendFile)
				convey.So(cfg.LeaderboardLimit, convey.ShouldEqual, 25)
				convey.So(cfg.MinCompliancePercent, convey.ShouldEqual, 40)
				convey.So(cfg.PointValues, convey.ShouldResemble, []float64{0, 0.5, 1})
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("ROLLCALL_ADDR", ":8080")
			_ = os.Setenv("ROLLCALL_BACKEND", "sqlite")
			_ = os.Setenv("ROLLCALL_SQLITE_DSN", "/tmp/attendance.db")
			_ = os.Setenv("ROLLCALL_TIMEZONE", "America/New_York")
			_ = os.Setenv("ROLLCALL_LEADERBOARD_LIMIT", "10")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Backend, convey.ShouldEqual, config.BackendSQLite)
				convey.So(cfg.SQLiteDSN, convey.ShouldEqual, "/tmp/attendance.db")
				convey.So(cfg.Timezone, convey.ShouldEqual, "America/New_York")
				convey.So(cfg.LeaderboardLimit, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			clearConfigEnvVars()
			path := filepath.Join(t.TempDir(), "config.yaml")
			yaml := "addr: \":7070\"\nbackend: memory\nmin_compliance_percent: 60\n"
			convey.So(os.WriteFile(path, []byte(yaml), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("ROLLCALL_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the file layers over the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.Backend, convey.ShouldEqual, config.BackendMemory)
				convey.So(cfg.MinCompliancePercent, convey.ShouldEqual, 60)
			})

			convey.Convey("And env still wins over the file", func() {
				_ = os.Setenv("ROLLCALL_ADDR", ":6060")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
			})
		})

		convey.Convey("When the config is invalid", func() {
			defer clearConfigEnvVars()

			convey.Convey("Then an unknown backend is rejected", func() {
				clearConfigEnvVars()
				_ = os.Setenv("ROLLCALL_BACKEND", "redis")
				_, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
			})

			convey.Convey("Then an out-of-range threshold is rejected", func() {
				clearConfigEnvVars()
				_ = os.Setenv("ROLLCALL_MIN_COMPLIANCE_PERCENT", "150")
				_, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
			})

			convey.Convey("Then a zero leaderboard limit is rejected", func() {
				clearConfigEnvVars()
				_ = os.Setenv("ROLLCALL_LEADERBOARD_LIMIT", "0")
				_, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}
