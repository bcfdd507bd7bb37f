package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track request patterns and latency of the reader surface.
var (
	// HTTPRequestsTotal counts HTTP requests by method, normalized path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures request latency.
	// Buckets cover fast in-memory views (5ms) up to slow refreshes (10s).
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestsInFlight tracks requests currently being served
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	// HTTPResponseSize measures response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)
)

// Reader metrics track the article session and the upstream endpoint.
var (
	// ArticleFetchTotal counts article list fetches by outcome
	ArticleFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsapi_fetch_total",
			Help: "Total number of article list fetches by status",
		},
		[]string{"status"},
	)

	// ArticleFetchDuration measures the time to fetch and decode the article list
	ArticleFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newsapi_fetch_duration_seconds",
			Help:    "Time taken to fetch the article list",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	// ArticlesReceived records how many articles each successful fetch returned
	ArticlesReceived = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newsapi_articles_received",
			Help:    "Number of articles returned by a successful fetch",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	// ArticlesLoaded is the number of articles held by the session
	ArticlesLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reader_articles_loaded",
			Help: "Number of articles currently held by the reader session",
		},
	)

	// FollowedFeeds is the number of followed feeds by kind (derived, user)
	FollowedFeeds = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reader_followed_feeds",
			Help: "Number of followed feeds by kind",
		},
		[]string{"kind"},
	)

	// FeedRegistrationsTotal counts feed registration attempts by result
	FeedRegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reader_feed_registrations_total",
			Help: "Total number of feed registration attempts by result",
		},
		[]string{"result"},
	)

	// SessionLoadsTotal counts session loads by outcome (success, failure)
	SessionLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reader_session_loads_total",
			Help: "Total number of session loads by outcome",
		},
		[]string{"outcome"},
	)

	// VisibleArticles records the size of filtered views
	VisibleArticles = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reader_visible_articles",
			Help:    "Number of articles left after filtering a view",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)
)
