package newsapi

import (
	"fmt"
	"os"
	"time"

	"fluxactu/internal/domain/entity"
	pkgconfig "fluxactu/pkg/config"
)

// DefaultURL is the summarization worker queried when no endpoint is configured.
const DefaultURL = "https://rss-worker.sapiniere45.workers.dev/news?summarize=true"

// Config holds the configuration for the article endpoint client.
type Config struct {
	// URL is the endpoint returning the article list. Query parameters baked into
	// the URL are sent as is; the client adds none.
	// Default: DefaultURL
	URL string `yaml:"url"`

	// Timeout is the maximum duration of a single request, including reading the body.
	// Default: 15s
	Timeout time.Duration `yaml:"timeout"`

	// MaxBodySize is the maximum response body size in bytes.
	// Larger bodies are rejected as decode failures.
	// Default: 10485760 (10MB)
	MaxBodySize int64 `yaml:"max_body_size"`

	// RetryAttempts is the number of attempts per fetch.
	// Default: 1 (a single request, no retry)
	RetryAttempts int `yaml:"retry_attempts"`

	// UserAgent is sent when non-empty.
	UserAgent string `yaml:"user_agent"`
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{
		URL:           DefaultURL,
		Timeout:       15 * time.Second,
		MaxBodySize:   10 * 1024 * 1024,
		RetryAttempts: 1,
		UserAgent:     "fluxactu/1.0",
	}
}

// Validate checks that the configuration is usable.
//
// Validation rules:
//   - URL: absolute http(s) URL with a host
//   - Timeout: > 0
//   - MaxBodySize: 1KB-100MB
//   - RetryAttempts: 1-5
func (c *Config) Validate() error {
	if err := entity.ValidateEndpointURL(c.URL); err != nil {
		return fmt.Errorf("invalid news api url: %w", err)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	minBodySize := int64(1024)
	maxBodySize := int64(100 * 1024 * 1024)
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.RetryAttempts < 1 || c.RetryAttempts > 5 {
		return fmt.Errorf("retry attempts must be between 1 and 5, got %d", c.RetryAttempts)
	}

	return nil
}

// LoadConfigFromEnv loads the client configuration from environment variables
// and validates it.
//
// Environment variables:
//   - NEWS_API_URL: endpoint URL; VITE_API_URL is read when NEWS_API_URL is unset
//   - NEWS_API_TIMEOUT: duration string, e.g. "15s"
//   - NEWS_API_MAX_BODY_SIZE: integer in bytes
//   - NEWS_API_RETRY_ATTEMPTS: integer
//   - NEWS_API_USER_AGENT: string
func LoadConfigFromEnv() (Config, error) {
	return ApplyEnv(DefaultConfig())
}

// ApplyEnv overrides cfg with any NEWS_API_* variables that are set and validates the result.
func ApplyEnv(cfg Config) (Config, error) {
	if url := os.Getenv("NEWS_API_URL"); url != "" {
		cfg.URL = url
	} else if url := os.Getenv("VITE_API_URL"); url != "" {
		cfg.URL = url
	}

	cfg.Timeout = pkgconfig.GetEnvDuration("NEWS_API_TIMEOUT", cfg.Timeout)
	cfg.MaxBodySize = int64(pkgconfig.GetEnvInt("NEWS_API_MAX_BODY_SIZE", int(cfg.MaxBodySize)))
	cfg.RetryAttempts = pkgconfig.GetEnvInt("NEWS_API_RETRY_ATTEMPTS", cfg.RetryAttempts)
	cfg.UserAgent = pkgconfig.GetEnvString("NEWS_API_USER_AGENT", cfg.UserAgent)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
