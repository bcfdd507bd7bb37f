package reader

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"fluxactu/internal/domain/entity"
	"fluxactu/internal/observability/metrics"
)

// ArticleSource supplies the article list.
type ArticleSource interface {
	Fetch(ctx context.Context) ([]entity.Article, error)
}

// Status is the load state of a session.
type Status struct {
	// Loading is true from session creation until the first load settles,
	// and again while any later load is in flight.
	Loading bool `json:"loading"`
	// Error is the user-visible message of the last failed load, or "".
	Error string `json:"error"`
	// Settled is true once at least one load has finished.
	Settled bool `json:"settled"`
	// Count is the number of articles held.
	Count int `json:"count"`
	// LoadedAt is the time of the last successful load.
	LoadedAt time.Time `json:"loaded_at,omitzero"`
}

// Snapshot is a copy of the session state.
type Snapshot struct {
	Status
	Articles     []entity.Article
	DerivedFeeds []entity.FollowedFeed
	UserFeeds    []entity.FollowedFeed
}

// Feeds returns derived feeds followed by user-registered feeds.
func (s Snapshot) Feeds() []entity.FollowedFeed {
	feeds := make([]entity.FollowedFeed, 0, len(s.DerivedFeeds)+len(s.UserFeeds))
	feeds = append(feeds, s.DerivedFeeds...)
	return append(feeds, s.UserFeeds...)
}

// Session holds one fetched article list and the followed feeds for the life of the process.
// It is safe for concurrent use.
type Session struct {
	source ArticleSource
	logger *slog.Logger
	now    func() time.Time

	group singleflight.Group

	mu        sync.RWMutex
	articles  []entity.Article
	derived   []entity.FollowedFeed
	userFeeds []entity.FollowedFeed
	loading   bool
	errMsg    string
	settled   bool
	loadedAt  time.Time
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithClock sets the clock used for LoadedAt.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession creates a session reading from source. It reports Loading until the first load settles.
func NewSession(source ArticleSource, opts ...SessionOption) *Session {
	s := &Session{
		source:   source,
		logger:   slog.Default(),
		now:      time.Now,
		articles: []entity.Article{},
		derived:  []entity.FollowedFeed{},
		loading:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the article list. Concurrent calls share one fetch.
//
// On success the articles and derived feeds are replaced. On failure the cause is
// logged, Error is set to LoadErrorMessage, and the previous articles are kept.
// Loading is cleared when the fetch settles, whatever the outcome.
func (s *Session) Load(ctx context.Context) error {
	_, err, _ := s.group.Do("load", func() (interface{}, error) {
		return nil, s.load(ctx)
	})
	return err
}

// Refresh re-runs the fetch and returns the resulting status.
func (s *Session) Refresh(ctx context.Context) (Status, error) {
	s.logger.Info("refreshing articles")
	err := s.Load(ctx)
	return s.Status(), err
}

func (s *Session) load(ctx context.Context) (err error) {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	var articles []entity.Article
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrLoadFailed, r)
		}
		s.settle(articles, err)
	}()

	articles, err = s.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return nil
}

func (s *Session) settle(articles []entity.Article, err error) {
	s.mu.Lock()
	s.loading = false
	s.settled = true
	if err != nil {
		s.errMsg = LoadErrorMessage
	} else {
		if articles == nil {
			articles = []entity.Article{}
		}
		s.articles = articles
		s.derived = DeriveFeeds(articles)
		s.loadedAt = s.now()
	}
	count, derived, user := len(s.articles), len(s.derived), len(s.userFeeds)
	s.mu.Unlock()

	metrics.RecordSessionLoad(err == nil)
	metrics.RecordArticlesLoaded(count)
	metrics.RecordFollowedFeeds(derived, user)

	if err != nil {
		s.logger.Error("article load failed", slog.Any("error", err))
		return
	}
	s.logger.Info("articles loaded",
		slog.Int("articles", count),
		slog.Int("feeds", derived))
}

// AddFeed registers a user feed. See NewFeed for the accepted input.
// It returns nil and no error when the URL is empty.
func (s *Session) AddFeed(rawURL, title, topic string) (*entity.FollowedFeed, error) {
	feed, err := NewFeed(rawURL, title, topic)
	switch {
	case err != nil:
		metrics.RecordFeedRegistration(metrics.RegistrationInvalid)
		s.logger.Warn("feed registration rejected",
			slog.String("url", rawURL),
			slog.Any("error", err))
		return nil, err
	case feed == nil:
		metrics.RecordFeedRegistration(metrics.RegistrationIgnored)
		return nil, nil
	}

	s.mu.Lock()
	s.userFeeds = append(s.userFeeds, *feed)
	derived, user := len(s.derived), len(s.userFeeds)
	s.mu.Unlock()

	metrics.RecordFeedRegistration(metrics.RegistrationAdded)
	metrics.RecordFollowedFeeds(derived, user)
	s.logger.Info("feed registered",
		slog.String("title", feed.Title),
		slog.String("topic", feed.Topic))
	return feed, nil
}

// Status returns the current load state.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statusLocked()
}

func (s *Session) statusLocked() Status {
	return Status{
		Loading:  s.loading,
		Error:    s.errMsg,
		Settled:  s.settled,
		Count:    len(s.articles),
		LoadedAt: s.loadedAt,
	}
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Status:       s.statusLocked(),
		Articles:     append([]entity.Article(nil), s.articles...),
		DerivedFeeds: append([]entity.FollowedFeed(nil), s.derived...),
		UserFeeds:    append([]entity.FollowedFeed(nil), s.userFeeds...),
	}
}

// Topics returns the topic selectors for the held articles.
func (s *Session) Topics() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Topics(s.articles)
}

// Feeds returns derived feeds followed by user-registered feeds.
func (s *Session) Feeds() []entity.FollowedFeed {
	return s.Snapshot().Feeds()
}

// View computes the page model for c and spice.
func (s *Session) View(c Criteria, spice int) Page {
	page := BuildPage(s.Snapshot(), c, spice)
	metrics.RecordVisibleArticles(len(page.Articles))
	return page
}
