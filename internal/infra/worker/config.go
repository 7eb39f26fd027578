package worker

import (
	"fmt"
	"log/slog"
	"time"

	"pubwatch/internal/pkg/config"
)

// Config holds the scheduling parameters for the watcher worker. It only
// applies when the binary runs in scheduled mode; a one-shot run reads
// RUN_TIMEOUT and ignores the rest.
//
// Values come from environment variables via LoadConfigFromEnv, with
// defaults from DefaultConfig. Loading is fail-open: an invalid value is
// replaced by its default with a warning, never a startup failure.
type Config struct {
	// PollSchedule is the cron expression controlling when the watcher
	// polls for new publications. Five-field format ("minute hour day
	// month weekday"). Default: "30 6 * * *" (every day at 6:30).
	PollSchedule string

	// Timezone is the IANA timezone the schedule is evaluated in.
	// Default: "America/New_York".
	Timezone string

	// RunTimeout bounds a single watch run, covering the literature
	// fetch, document downloads, review generation, and mail delivery.
	// Default: 20 minutes.
	RunTimeout time.Duration

	// HealthPort is the port for the health check HTTP server.
	// Range: 1024-65535. Default: 9091.
	HealthPort int
}

// DefaultConfig returns the production defaults: a daily morning poll in
// US Eastern time, a 20 minute run timeout, and the usual exporter port
// for health checks.
func DefaultConfig() Config {
	return Config{
		PollSchedule: "30 6 * * *",
		Timezone:     "America/New_York",
		RunTimeout:   20 * time.Minute,
		HealthPort:   9091,
	}
}

// Validate checks every field and returns an aggregated error naming each
// invalid one, so an operator can fix all problems in one pass.
func (c *Config) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.PollSchedule); err != nil {
		errs = append(errs, fmt.Errorf("poll schedule: %w", err))
	}

	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}

	if err := config.ValidatePositiveDuration(c.RunTimeout); err != nil {
		errs = append(errs, fmt.Errorf("run timeout: %w", err))
	}

	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}

	return nil
}

// LoadConfigFromEnv loads worker configuration from environment variables
// with validation and fallback to defaults on failure.
//
// Environment variables:
//   - POLL_SCHEDULE: Cron expression (default: "30 6 * * *")
//   - WORKER_TIMEZONE: IANA timezone name (default: "America/New_York")
//   - RUN_TIMEOUT: Duration string, e.g. "20m" (default: 20 minutes, range 1m-2h)
//   - WORKER_HEALTH_PORT: Integer 1024-65535 (default: 9091)
//
// Each fallback is logged at Warn and counted in the watcher configuration
// metrics. The returned config is always valid; the error is always nil
// and exists only to match the conventional loader signature.
func LoadConfigFromEnv(logger *slog.Logger, metrics *Metrics) (*Config, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	result := config.LoadEnvWithFallback("POLL_SCHEDULE", cfg.PollSchedule, config.ValidateCronSchedule)
	cfg.PollSchedule = result.Value.(string)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("poll_schedule")
		metrics.RecordFallback("poll_schedule", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "PollSchedule"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("timezone")
		metrics.RecordFallback("timezone", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "Timezone"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvDuration("RUN_TIMEOUT", cfg.RunTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Minute, 2*time.Hour)
	})
	cfg.RunTimeout = result.Value.(time.Duration)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("run_timeout")
		metrics.RecordFallback("run_timeout", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "RunTimeout"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("health_port")
		metrics.RecordFallback("health_port", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "HealthPort"),
				slog.String("warning", warning))
		}
	}

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
