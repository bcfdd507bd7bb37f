// Package config assembles the reader service configuration from an optional
// YAML file and environment variables. Environment variables win.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"fluxactu/internal/infra/newsapi"
	"fluxactu/internal/infra/worker"
	"fluxactu/internal/observability/tracing"
	pkgconfig "fluxactu/internal/pkg/config"
	"fluxactu/internal/usecase/reader"
	envconfig "fluxactu/pkg/config"
)

// ConfigFileEnv names the variable holding the YAML config path.
const ConfigFileEnv = "CONFIG_FILE"

// Config is the complete service configuration.
type Config struct {
	// ListenAddr is the HTTP listen address.
	// Default: ":8080"
	ListenAddr string `yaml:"listen_addr"`

	// DefaultSpice is the tone used when a view does not specify one.
	// Range: 0-100
	// Default: 60
	DefaultSpice int `yaml:"default_spice"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 5s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// RefreshPerMinute caps POST /api/refresh. Zero disables the limit.
	// Range: 0-600
	// Default: 6
	RefreshPerMinute int `yaml:"refresh_rate_per_minute"`

	// CSPReportOnly sends the Content-Security-Policy in report-only mode.
	CSPReportOnly bool `yaml:"csp_report_only"`

	NewsAPI newsapi.Config `yaml:"news_api"`
	Refresh worker.Config  `yaml:"refresh"`
	Tracing tracing.Config `yaml:"tracing"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ListenAddr:       ":8080",
		DefaultSpice:     reader.DefaultSpice,
		ShutdownTimeout:  5 * time.Second,
		RefreshPerMinute: 6,
		NewsAPI:          newsapi.DefaultConfig(),
		Refresh:          worker.DefaultConfig(),
		Tracing: tracing.Config{
			ServiceName: "fluxactu",
			SampleRatio: 1,
		},
	}
}

// Validate checks every section and joins all failures.
func (c Config) Validate() error {
	var errs []error
	if c.ListenAddr == "" {
		errs = append(errs, errors.New("listen addr: cannot be empty"))
	}
	if err := pkgconfig.ValidateIntRange(c.DefaultSpice, reader.MinSpice, reader.MaxSpice); err != nil {
		errs = append(errs, fmt.Errorf("default spice: %w", err))
	}
	if err := pkgconfig.ValidatePositiveDuration(c.ShutdownTimeout); err != nil {
		errs = append(errs, fmt.Errorf("shutdown timeout: %w", err))
	}
	if err := pkgconfig.ValidateIntRange(c.RefreshPerMinute, 0, 600); err != nil {
		errs = append(errs, fmt.Errorf("refresh rate: %w", err))
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("tracing sample ratio must be between 0 and 1, got %v", c.Tracing.SampleRatio))
	}
	if err := c.NewsAPI.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("news api: %w", err))
	}
	if err := c.Refresh.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("refresh: %w", err))
	}
	return errors.Join(errs...)
}

// Load builds the configuration: defaults, then the YAML file named by
// CONFIG_FILE when set, then environment variables. The result is validated.
func Load(logger *slog.Logger, metrics *pkgconfig.ConfigMetrics) (Config, error) {
	cfg := Default()

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(logger, metrics); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadFile reads path over the defaults without consulting the environment.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if err := cfg.mergeFile(path); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(logger *slog.Logger, metrics *pkgconfig.ConfigMetrics) error {
	c.ListenAddr = envconfig.GetEnvString("LISTEN_ADDR", c.ListenAddr)
	c.DefaultSpice = envconfig.GetEnvInt("DEFAULT_SPICE", c.DefaultSpice)
	c.ShutdownTimeout = envconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
	c.RefreshPerMinute = envconfig.GetEnvInt("REFRESH_RATE_PER_MINUTE", c.RefreshPerMinute)
	c.CSPReportOnly = envconfig.GetEnvBool("CSP_REPORT_ONLY", c.CSPReportOnly)
	c.Tracing.ServiceName = envconfig.GetEnvString("OTEL_SERVICE_NAME", c.Tracing.ServiceName)
	c.Tracing.SampleRatio = envconfig.GetEnvFloat("TRACING_SAMPLE_RATIO", c.Tracing.SampleRatio)

	api, err := newsapi.ApplyEnv(c.NewsAPI)
	if err != nil {
		return fmt.Errorf("news api config: %w", err)
	}
	c.NewsAPI = api
	c.Refresh = worker.ApplyEnv(c.Refresh, logger, metrics)
	return nil
}
