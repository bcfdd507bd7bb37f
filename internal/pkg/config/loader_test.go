package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvString(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		wantValue    string
		wantFallback bool
	}{
		{name: "unset uses default", value: "", wantValue: "@hourly"},
		{name: "valid value", value: "*/15 * * * *", wantValue: "*/15 * * * *"},
		{name: "invalid falls back", value: "every day", wantValue: "@hourly", wantFallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("FLUXACTU_TEST_SCHEDULE", tt.value)

			result := LoadEnvString("FLUXACTU_TEST_SCHEDULE", "@hourly", ValidateCronSchedule)
			assert.Equal(t, tt.wantValue, result.Value)
			assert.Equal(t, tt.wantFallback, result.FallbackApplied)
			if tt.wantFallback {
				assert.Contains(t, result.Warning, "Invalid FLUXACTU_TEST_SCHEDULE='every day'")
				assert.Contains(t, result.Warning, "falling back to default '@hourly'")
			} else {
				assert.Empty(t, result.Warning)
			}
		})
	}
}

func TestLoadEnvString_NilValidator(t *testing.T) {
	t.Setenv("FLUXACTU_TEST_ANY", "anything")
	result := LoadEnvString("FLUXACTU_TEST_ANY", "x", nil)
	assert.Equal(t, "anything", result.Value)
	assert.False(t, result.FallbackApplied)
}

func TestLoadEnvDuration(t *testing.T) {
	within := func(d time.Duration) error { return ValidateDuration(d, time.Second, time.Hour) }

	tests := []struct {
		name         string
		value        string
		want         time.Duration
		wantFallback bool
	}{
		{name: "unset", value: "", want: time.Minute},
		{name: "valid", value: "90s", want: 90 * time.Second},
		{name: "unparsable", value: "soon", want: time.Minute, wantFallback: true},
		{name: "out of range", value: "2h", want: time.Minute, wantFallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("FLUXACTU_TEST_TIMEOUT", tt.value)
			result := LoadEnvDuration("FLUXACTU_TEST_TIMEOUT", time.Minute, within)
			assert.Equal(t, tt.want, result.Value)
			assert.Equal(t, tt.wantFallback, result.FallbackApplied)
		})
	}
}

func TestLoadEnvInt(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		want         int
		wantFallback bool
	}{
		{name: "unset", value: "", want: 6},
		{name: "valid", value: "12", want: 12},
		{name: "zero allowed", value: "0", want: 0},
		{name: "not a number", value: "six", want: 6, wantFallback: true},
		{name: "out of range", value: "1000", want: 6, wantFallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("FLUXACTU_TEST_RATE", tt.value)
			result := LoadEnvInt("FLUXACTU_TEST_RATE", 6, func(v int) error { return ValidateIntRange(v, 0, 600) })
			assert.Equal(t, tt.want, result.Value)
			assert.Equal(t, tt.wantFallback, result.FallbackApplied)
		})
	}
}

func TestLoadEnvInt_ValidatorError(t *testing.T) {
	t.Setenv("FLUXACTU_TEST_RATE", "3")
	result := LoadEnvInt("FLUXACTU_TEST_RATE", 1, func(int) error { return errors.New("odd values rejected") })
	assert.True(t, result.FallbackApplied)
	assert.Contains(t, result.Warning, "odd values rejected")
}
