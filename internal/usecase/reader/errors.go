// Package reader implements the article reading pipeline: topic and keyword
// filtering, ordering, the tone transform applied to summaries, followed feed
// registration, and the in-memory session that holds one fetch of articles.
package reader

import "errors"

// LoadErrorMessage is the user-visible message shown when the article list could not be loaded.
const LoadErrorMessage = "Impossible de récupérer les articles (API)."

// InvalidFeedURLMessage is the user-visible message for a feed URL that does not parse.
const InvalidFeedURLMessage = "URL invalide"

// Sentinel errors for reader operations.
var (
	// ErrLoadFailed wraps every failure to fetch the article list.
	ErrLoadFailed = errors.New("load articles")

	// ErrInvalidFeedURL indicates a feed URL that could not be parsed to derive a title.
	ErrInvalidFeedURL = errors.New("invalid feed URL")

	// ErrInvalidSpice indicates a tone value outside 0-100 or not an integer.
	ErrInvalidSpice = errors.New("spice must be an integer between 0 and 100")

	// ErrInvalidOrder indicates an unknown ordering name.
	ErrInvalidOrder = errors.New("unknown order")
)
