package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"fluxactu/internal/domain/entity"
	"fluxactu/internal/usecase/reader"
)

// Session is the part of the reader session the API needs.
type Session interface {
	View(c reader.Criteria, spice int) reader.Page
	Topics() []string
	Feeds() []entity.FollowedFeed
	AddFeed(rawURL, title, topic string) (*entity.FollowedFeed, error)
	Refresh(ctx context.Context) (reader.Status, error)
}

// Options configures the API handlers.
type Options struct {
	// DefaultSpice applies when a request carries no spice.
	DefaultSpice int
	// RefreshPerMinute caps manual refreshes. Zero or less disables the limit.
	RefreshPerMinute int
	// RefreshTimeout bounds one manual refresh. Zero means one minute.
	RefreshTimeout time.Duration
}

// Register registers the JSON API handlers with the given mux.
func Register(mux *http.ServeMux, session Session, opts Options, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	mux.Handle("GET /api/articles", ArticlesHandler{Session: session, DefaultSpice: opts.DefaultSpice, Logger: logger})
	mux.Handle("GET /api/topics", TopicsHandler{Session: session})
	mux.Handle("GET /api/feeds", ListFeedsHandler{Session: session})
	mux.Handle("POST /api/feeds", AddFeedHandler{Session: session, Logger: logger})
	mux.Handle("POST /api/refresh", RefreshHandler{
		Session: session,
		Limiter: NewRefreshLimiter(opts.RefreshPerMinute),
		Timeout: opts.RefreshTimeout,
		Logger:  logger,
	})
}

// NewRefreshLimiter returns a limiter allowing perMinute refreshes per minute
// with a burst of perMinute, or nil when perMinute is not positive.
func NewRefreshLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
}
