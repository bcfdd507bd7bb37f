package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fluxactu/internal/infra/newsapi"
	pkgconfig "fluxactu/internal/pkg/config"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMetrics() *pkgconfig.ConfigMetrics {
	return pkgconfig.NewConfigMetricsWith(prometheus.NewRegistry(), "test")
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fluxactu.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 60, cfg.DefaultSpice)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 6, cfg.RefreshPerMinute)
	assert.Equal(t, newsapi.DefaultURL, cfg.NewsAPI.URL)
	assert.Equal(t, 1, cfg.NewsAPI.RetryAttempts)
	assert.False(t, cfg.Refresh.Enabled())
}

func TestLoad_DefaultsWithoutFileOrEnv(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")

	cfg, err := Load(quietLogger(), testMetrics())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
listen_addr: ":9090"
default_spice: 80
shutdown_timeout: 10s
refresh_rate_per_minute: 0
csp_report_only: true
news_api:
  url: "https://worker.example/news"
  timeout: 3s
  retry_attempts: 2
refresh:
  schedule: "*/15 * * * *"
  timezone: "Europe/Paris"
tracing:
  sample_ratio: 0.5
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, 80, cfg.DefaultSpice)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 0, cfg.RefreshPerMinute)
	assert.True(t, cfg.CSPReportOnly)
	assert.Equal(t, "https://worker.example/news", cfg.NewsAPI.URL)
	assert.Equal(t, 3*time.Second, cfg.NewsAPI.Timeout)
	assert.Equal(t, 2, cfg.NewsAPI.RetryAttempts)
	assert.Equal(t, int64(10*1024*1024), cfg.NewsAPI.MaxBodySize, "unset keys keep defaults")
	assert.Equal(t, "*/15 * * * *", cfg.Refresh.Schedule)
	assert.Equal(t, "Europe/Paris", cfg.Refresh.Timezone)
	assert.Equal(t, time.Minute, cfg.Refresh.Timeout)
	assert.Equal(t, 0.5, cfg.Tracing.SampleRatio)
	assert.Equal(t, "fluxactu", cfg.Tracing.ServiceName)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, `
listen_addr: ":9090"
default_spice: 80
news_api:
  url: "https://worker.example/news"
`)
	t.Setenv(ConfigFileEnv, path)
	t.Setenv("LISTEN_ADDR", ":7070")
	t.Setenv("NEWS_API_URL", "https://override.example/news?summarize=true")
	t.Setenv("REFRESH_SCHEDULE", "@every 30m")
	t.Setenv("CSP_REPORT_ONLY", "true")

	cfg, err := Load(quietLogger(), testMetrics())
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.ListenAddr)
	assert.Equal(t, 80, cfg.DefaultSpice)
	assert.Equal(t, "https://override.example/news?summarize=true", cfg.NewsAPI.URL)
	assert.Equal(t, "@every 30m", cfg.Refresh.Schedule)
	assert.True(t, cfg.CSPReportOnly)
}

func TestLoad_ViteAlias(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")
	t.Setenv("VITE_API_URL", "https://vite.example/news")

	cfg, err := Load(quietLogger(), testMetrics())
	require.NoError(t, err)
	assert.Equal(t, "https://vite.example/news", cfg.NewsAPI.URL)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     map[string]string
		wantErr string
	}{
		{name: "missing file", env: map[string]string{ConfigFileEnv: "/nonexistent/fluxactu.yaml"}, wantErr: "read config file"},
		{name: "malformed yaml", file: "listen_addr: [", wantErr: "parse config file"},
		{name: "spice out of range", env: map[string]string{"DEFAULT_SPICE": "150"}, wantErr: "default spice"},
		{name: "bad endpoint", env: map[string]string{"NEWS_API_URL": "not a url"}, wantErr: "news api"},
		{name: "bad sample ratio", file: "tracing:\n  sample_ratio: 2", wantErr: "sample ratio"},
		{name: "bad refresh rate", env: map[string]string{"REFRESH_RATE_PER_MINUTE": "-1"}, wantErr: "refresh rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigFileEnv, "")
			if tt.file != "" {
				t.Setenv(ConfigFileEnv, writeFile(t, tt.file))
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(quietLogger(), testMetrics())
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoad_InvalidRefreshEnvFallsBack(t *testing.T) {
	t.Setenv(ConfigFileEnv, writeFile(t, "refresh:\n  schedule: \"@hourly\"\n"))
	t.Setenv("REFRESH_SCHEDULE", "not cron")

	cfg, err := Load(quietLogger(), testMetrics())
	require.NoError(t, err)
	assert.Equal(t, "@hourly", cfg.Refresh.Schedule)
}
