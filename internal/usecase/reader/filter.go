package reader

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"fluxactu/internal/domain/entity"
)

// AllTopics is the topic selector that disables topic filtering.
const AllTopics = "All"

// Order selects how filtered articles are ranked.
type Order string

const (
	// OrderByDate ranks by publication date, most recent first.
	OrderByDate Order = "date"
	// OrderByScore ranks by relevance score, highest first.
	OrderByScore Order = "score"
)

// ParseOrder parses an ordering name. Empty means OrderByDate.
func ParseOrder(raw string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(OrderByDate):
		return OrderByDate, nil
	case string(OrderByScore):
		return OrderByScore, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOrder, raw)
	}
}

// Criteria is the active view selection.
type Criteria struct {
	// Topic is AllTopics, empty, or an exact effective topic.
	Topic string
	// Query is matched case-insensitively against title, summary and AI summary.
	Query string
	// Order defaults to OrderByDate.
	Order Order
}

// DefaultCriteria returns the initial view: all topics, no query, newest first.
func DefaultCriteria() Criteria {
	return Criteria{Topic: AllTopics, Order: OrderByDate}
}

// Topics returns AllTopics followed by each distinct effective topic in order of first appearance.
func Topics(articles []entity.Article) []string {
	topics := []string{AllTopics}
	seen := make(map[string]struct{}, len(articles))
	for _, a := range articles {
		t := a.EffectiveTopic()
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		topics = append(topics, t)
	}
	return topics
}

// MatchesTopic reports whether a passes the topic predicate.
func MatchesTopic(a entity.Article, topic string) bool {
	if topic == "" || topic == AllTopics {
		return true
	}
	return a.EffectiveTopic() == topic
}

// MatchesQuery reports whether a passes the text predicate.
// A blank query accepts everything. The untrimmed query is what gets searched.
func MatchesQuery(a entity.Article, query string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.SearchText()), strings.ToLower(query))
}

// Filter applies the topic and text predicates and returns the result ranked by c.Order.
// The input slice is not modified. Ties keep their input order.
func Filter(articles []entity.Article, c Criteria) []entity.Article {
	out := make([]entity.Article, 0, len(articles))
	for _, a := range articles {
		if MatchesTopic(a, c.Topic) && MatchesQuery(a, c.Query) {
			out = append(out, a)
		}
	}

	switch c.Order {
	case OrderByScore:
		sortByScore(out)
	default:
		sortByDate(out)
	}
	return out
}

// sortByDate orders newest first. Missing or unparsable dates sort last.
func sortByDate(articles []entity.Article) {
	type keyed struct {
		article entity.Article
		at      time.Time
		valid   bool
	}
	keys := make([]keyed, len(articles))
	for i, a := range articles {
		t, ok := a.PublishedAt()
		keys[i] = keyed{article: a, at: t, valid: ok}
	}

	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.valid != b.valid {
			return a.valid
		}
		return a.valid && a.at.After(b.at)
	})
	for i, k := range keys {
		articles[i] = k.article
	}
}

// sortByScore orders highest score first. Missing scores sort last.
func sortByScore(articles []entity.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i].Score, articles[j].Score
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a > *b
		}
	})
}
