package reader

import (
	"fmt"
	"strings"

	"fluxactu/internal/domain/entity"
)

// DeriveFeeds returns one followed feed per distinct non-empty source, in order of
// first appearance. When a source appears more than once its last effective topic wins.
func DeriveFeeds(articles []entity.Article) []entity.FollowedFeed {
	feeds := make([]entity.FollowedFeed, 0)
	index := make(map[string]int)
	for _, a := range articles {
		if a.Source == "" {
			continue
		}
		feed := entity.FollowedFeed{Title: a.Source, Topic: a.EffectiveTopic()}
		if i, ok := index[a.Source]; ok {
			feeds[i] = feed
			continue
		}
		index[a.Source] = len(feeds)
		feeds = append(feeds, feed)
	}
	return feeds
}

// NewFeed builds a user-registered feed.
//
// An empty URL returns nil and no error. Without a title the URL is parsed and its
// host, minus the first "www.", becomes the title; a URL that does not parse returns
// ErrInvalidFeedURL. An empty topic becomes entity.FallbackTopic. The URL is never contacted.
func NewFeed(rawURL, title, topic string) (*entity.FollowedFeed, error) {
	rawURL = strings.TrimSpace(rawURL)
	title = strings.TrimSpace(title)
	topic = strings.TrimSpace(topic)

	if rawURL == "" {
		return nil, nil
	}

	if title == "" {
		u, err := entity.ParseAbsoluteURL(rawURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFeedURL, err)
		}
		title = entity.HostLabel(u)
	}

	if topic == "" {
		topic = entity.FallbackTopic
	}

	return &entity.FollowedFeed{URL: rawURL, Title: title, Topic: topic}, nil
}
