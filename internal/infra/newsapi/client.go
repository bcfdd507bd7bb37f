// Package newsapi fetches the summarized article list from the worker endpoint.
package newsapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"fluxactu/internal/domain/entity"
	"fluxactu/internal/observability/metrics"
	"fluxactu/internal/observability/tracing"
	"fluxactu/internal/resilience/circuitbreaker"
	"fluxactu/internal/resilience/retry"
)

// ErrDecode is wrapped by every failure to read or decode a 2xx response body.
var ErrDecode = metrics.ErrDecode

// Client fetches articles from a single configured endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
	retry      retry.Config
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for cfg. cfg is expected to be validated.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    circuitbreaker.New(circuitbreaker.NewsAPIConfig()),
		retry:      retry.NewsAPIConfig(cfg.RetryAttempts),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the configured endpoint.
func (c *Client) URL() string {
	return c.cfg.URL
}

// Host returns the host[:port] of the configured endpoint, or "" when it does not parse.
func (c *Client) Host() string {
	u, err := url.Parse(c.cfg.URL)
	if err != nil {
		return ""
	}
	return u.Host
}

// Fetch issues one GET to the endpoint and returns the decoded article list.
//
// A 2xx response whose body is a JSON array yields its elements. Any other
// valid JSON value yields an empty list and no error. Non-2xx responses return
// a *retry.HTTPError; unreadable or invalid bodies wrap ErrDecode.
func (c *Client) Fetch(ctx context.Context) ([]entity.Article, error) {
	ctx, span := tracing.StartClientSpan(ctx, "newsapi.fetch",
		attribute.String("url.host", c.Host()),
	)
	defer span.End()

	start := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		var articles []entity.Article
		retryErr := retry.WithBackoff(ctx, c.retry, func() error {
			var fetchErr error
			articles, fetchErr = c.fetchOnce(ctx)
			return fetchErr
		})
		return articles, retryErr
	})
	status := metrics.FetchStatus(err)
	metrics.RecordArticleFetch(status, time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, status)
		c.logger.Error("article fetch failed",
			slog.String("host", c.Host()),
			slog.String("status", status),
			slog.Any("error", err))
		return nil, fmt.Errorf("fetch articles: %w", err)
	}

	articles, _ := result.([]entity.Article)
	if articles == nil {
		articles = []entity.Article{}
	}
	span.SetAttributes(attribute.Int("articles.count", len(articles)))
	metrics.RecordArticlesReceived(len(articles))
	c.logger.Debug("articles fetched",
		slog.String("host", c.Host()),
		slog.Int("count", len(articles)),
		slog.Duration("duration", time.Since(start)))
	return articles, nil
}

func (c *Client) fetchOnce(ctx context.Context) ([]entity.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrDecode, err)
	}
	if int64(len(body)) > c.cfg.MaxBodySize {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrDecode, c.cfg.MaxBodySize)
	}

	return decodeArticles(body)
}
