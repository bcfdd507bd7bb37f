package newsapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultURL, cfg.URL)
	assert.Equal(t, 1, cfg.RetryAttempts)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "relative url", mutate: func(c *Config) { c.URL = "/news" }, wantErr: "invalid news api url"},
		{name: "ftp url", mutate: func(c *Config) { c.URL = "ftp://example.com/news" }, wantErr: "http or https"},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }, wantErr: "timeout must be positive"},
		{name: "tiny body", mutate: func(c *Config) { c.MaxBodySize = 10 }, wantErr: "max body size"},
		{name: "zero attempts", mutate: func(c *Config) { c.RetryAttempts = 0 }, wantErr: "retry attempts"},
		{name: "too many attempts", mutate: func(c *Config) { c.RetryAttempts = 9 }, wantErr: "retry attempts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("NEWS_API_URL", "https://news.example.com/feed")
	t.Setenv("NEWS_API_TIMEOUT", "3s")
	t.Setenv("NEWS_API_RETRY_ATTEMPTS", "2")

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://news.example.com/feed", cfg.URL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, 2, cfg.RetryAttempts)
}

func TestLoadConfigFromEnv_ViteAlias(t *testing.T) {
	t.Setenv("NEWS_API_URL", "")
	t.Setenv("VITE_API_URL", "https://alias.example.com/news")

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://alias.example.com/news", cfg.URL)
}

func TestLoadConfigFromEnv_PrimaryWinsOverAlias(t *testing.T) {
	t.Setenv("NEWS_API_URL", "https://primary.example.com/news")
	t.Setenv("VITE_API_URL", "https://alias.example.com/news")

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://primary.example.com/news", cfg.URL)
}

func TestLoadConfigFromEnv_Invalid(t *testing.T) {
	t.Setenv("NEWS_API_URL", "not a url")

	_, err := LoadConfigFromEnv()
	assert.Error(t, err)
}
