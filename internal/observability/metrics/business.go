package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"fluxactu/internal/resilience/retry"
)

// Fetch status labels.
const (
	FetchSuccess      = "success"
	FetchHTTPError    = "http_error"
	FetchNetworkError = "network_error"
	FetchDecodeError  = "decode_error"
	FetchCircuitOpen  = "circuit_open"
	FetchCanceled     = "canceled"
)

// Feed registration result labels.
const (
	RegistrationAdded   = "added"
	RegistrationIgnored = "ignored"
	RegistrationInvalid = "invalid"
)

// ErrDecode marks a response body that could not be decoded.
// Adapters wrap it so FetchStatus can classify decode failures.
var ErrDecode = errors.New("decode response")

// FetchStatus classifies a fetch error into a status label.
func FetchStatus(err error) string {
	var httpErr *retry.HTTPError
	switch {
	case err == nil:
		return FetchSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return FetchCanceled
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return FetchCircuitOpen
	case errors.As(err, &httpErr):
		return FetchHTTPError
	case errors.Is(err, ErrDecode):
		return FetchDecodeError
	default:
		return FetchNetworkError
	}
}

// RecordArticleFetch records the outcome and duration of one article list fetch.
func RecordArticleFetch(status string, duration time.Duration) {
	ArticleFetchTotal.WithLabelValues(status).Inc()
	ArticleFetchDuration.Observe(duration.Seconds())
}

// RecordArticlesReceived records the size of a successful fetch.
func RecordArticlesReceived(count int) {
	ArticlesReceived.Observe(float64(count))
}

// RecordArticlesLoaded updates the number of articles held by the session.
func RecordArticlesLoaded(count int) {
	ArticlesLoaded.Set(float64(count))
}

// RecordFollowedFeeds updates the followed feed gauges.
func RecordFollowedFeeds(derived, user int) {
	FollowedFeeds.WithLabelValues("derived").Set(float64(derived))
	FollowedFeeds.WithLabelValues("user").Set(float64(user))
}

// RecordFeedRegistration records a feed registration attempt.
func RecordFeedRegistration(result string) {
	FeedRegistrationsTotal.WithLabelValues(result).Inc()
}

// RecordSessionLoad records whether a session load succeeded.
func RecordSessionLoad(success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	SessionLoadsTotal.WithLabelValues(outcome).Inc()
}

// RecordVisibleArticles records the size of a filtered view.
func RecordVisibleArticles(count int) {
	VisibleArticles.Observe(float64(count))
}
