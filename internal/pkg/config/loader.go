// Package config loads validated settings from the environment with a
// fail-open strategy: an invalid value is replaced by its default and
// reported as a warning instead of an error.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Result is the outcome of loading one setting.
type Result[T any] struct {
	Value T
	// Warning describes the rejected value when FallbackApplied is true.
	Warning         string
	FallbackApplied bool
}

// LoadEnvString reads envKey and validates it. An unset or empty variable
// yields defaultValue without a warning. validator may be nil.
//
//	result := LoadEnvString("REFRESH_SCHEDULE", "", ValidateOptionalCronSchedule)
//	if result.FallbackApplied {
//	    logger.Warn("configuration fallback applied", slog.String("warning", result.Warning))
//	}
func LoadEnvString(envKey, defaultValue string, validator func(string) error) Result[string] {
	value := os.Getenv(envKey)
	if value == "" {
		return Result[string]{Value: defaultValue}
	}
	return check(envKey, value, value, defaultValue, validator)
}

// LoadEnvDuration reads envKey as a time.ParseDuration string and validates it.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) Result[time.Duration] {
	raw := os.Getenv(envKey)
	if raw == "" {
		return Result[time.Duration]{Value: defaultValue}
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback(envKey, raw, defaultValue, fmt.Errorf("parse duration: %w", err))
	}
	return check(envKey, raw, value, defaultValue, validator)
}

// LoadEnvInt reads envKey as a base-10 integer and validates it.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) Result[int] {
	raw := strings.TrimSpace(os.Getenv(envKey))
	if raw == "" {
		return Result[int]{Value: defaultValue}
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback(envKey, raw, defaultValue, fmt.Errorf("parse integer: %w", err))
	}
	return check(envKey, raw, value, defaultValue, validator)
}

func check[T any](envKey, raw string, value, defaultValue T, validator func(T) error) Result[T] {
	if validator != nil {
		if err := validator(value); err != nil {
			return fallback(envKey, raw, defaultValue, err)
		}
	}
	return Result[T]{Value: value}
}

func fallback[T any](envKey, raw string, defaultValue T, err error) Result[T] {
	return Result[T]{
		Value:           defaultValue,
		Warning:         fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'", envKey, raw, err, defaultValue),
		FallbackApplied: true,
	}
}
