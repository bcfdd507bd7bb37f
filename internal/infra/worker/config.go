// Package worker runs the scheduled article refresh of the reader session.
package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fluxactu/internal/pkg/config"
)

// Config controls the scheduled refresh.
type Config struct {
	// Schedule is a cron expression ("minute hour day month weekday") or a
	// descriptor such as "@every 30m". Empty disables scheduled refreshes.
	// Default: ""
	Schedule string `yaml:"schedule"`

	// Timezone is the IANA timezone the schedule is evaluated in.
	// Default: "UTC"
	Timezone string `yaml:"timezone"`

	// Timeout bounds a single refresh.
	// Range: 1s-10m
	// Default: 1m
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns the refresh defaults: disabled, UTC, one minute per run.
func DefaultConfig() Config {
	return Config{
		Schedule: "",
		Timezone: "UTC",
		Timeout:  time.Minute,
	}
}

// Enabled reports whether a schedule is configured.
func (c Config) Enabled() bool {
	return c.Schedule != ""
}

func validateTimeout(d time.Duration) error {
	return config.ValidateDuration(d, time.Second, 10*time.Minute)
}

// Validate checks every field and joins all failures.
func (c Config) Validate() error {
	var errs []error
	if err := config.ValidateOptionalCronSchedule(c.Schedule); err != nil {
		errs = append(errs, fmt.Errorf("schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := validateTimeout(c.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("timeout: %w", err))
	}
	return errors.Join(errs...)
}

// ApplyEnv overrides cfg from REFRESH_SCHEDULE, REFRESH_TIMEZONE and REFRESH_TIMEOUT.
// An invalid variable keeps the value from cfg, logs a warning and is counted
// in metrics, which may be nil.
func ApplyEnv(cfg Config, logger *slog.Logger, metrics *config.ConfigMetrics) Config {
	if logger == nil {
		logger = slog.Default()
	}
	fallbackActive := false
	note := func(field, warning string) {
		fallbackActive = true
		logger.Warn("configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", warning))
		if metrics != nil {
			metrics.RecordFallback(field)
		}
	}

	schedule := config.LoadEnvString("REFRESH_SCHEDULE", cfg.Schedule, config.ValidateOptionalCronSchedule)
	if schedule.FallbackApplied {
		note("refresh_schedule", schedule.Warning)
	}
	cfg.Schedule = schedule.Value

	timezone := config.LoadEnvString("REFRESH_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	if timezone.FallbackApplied {
		note("refresh_timezone", timezone.Warning)
	}
	cfg.Timezone = timezone.Value

	timeout := config.LoadEnvDuration("REFRESH_TIMEOUT", cfg.Timeout, validateTimeout)
	if timeout.FallbackApplied {
		note("refresh_timeout", timeout.Warning)
	}
	cfg.Timeout = timeout.Value

	if metrics != nil {
		metrics.RecordLoad(fallbackActive)
	}
	return cfg
}
