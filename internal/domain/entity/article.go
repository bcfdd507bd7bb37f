// Package entity defines the core domain entities of the reader.
// It contains the Article records supplied by the summarization worker,
// the FollowedFeed entries shown in the sidebar, and domain-specific errors.
package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// FallbackTopic is the effective topic of articles that carry no topic.
const FallbackTopic = "Divers"

// ID is an opaque article identifier.
// The worker emits either JSON strings or numbers; both decode to their textual form.
type ID string

// UnmarshalJSON accepts a JSON string, number, or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Article represents one summarized news item supplied by the external retrieval endpoint.
// Articles are read-only for the lifetime of a session.
type Article struct {
	ID        ID       `json:"id"`
	Title     string   `json:"title"`
	Summary   string   `json:"summary,omitempty"`
	AISummary string   `json:"ai_summary,omitempty"`
	Topic     string   `json:"topic,omitempty"`
	Source    string   `json:"source"`
	Date      string   `json:"date"`
	Tags      []string `json:"tags"`
	URL       string   `json:"url"`
	Score     *float64 `json:"score,omitempty"`
}

// EffectiveTopic returns the article topic, or FallbackTopic when it is absent.
func (a Article) EffectiveTopic() string {
	if a.Topic == "" {
		return FallbackTopic
	}
	return a.Topic
}

// PublishedAt parses Date. It reports false for a missing or unparsable date.
func (a Article) PublishedAt() (time.Time, bool) {
	raw := strings.TrimSpace(a.Date)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, true
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SearchText is the text matched by keyword search: title, summary and AI summary joined by spaces.
func (a Article) SearchText() string {
	return a.Title + " " + a.Summary + " " + a.AISummary
}

// TagList returns Tags, never nil.
func (a Article) TagList() []string {
	if a.Tags == nil {
		return []string{}
	}
	return a.Tags
}
