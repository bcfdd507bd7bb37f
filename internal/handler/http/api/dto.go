// Package api provides the JSON endpoints of the reader: the filtered article
// list, topics, followed feeds, feed registration and manual refresh.
package api

import (
	"time"

	"fluxactu/internal/domain/entity"
	"fluxactu/internal/usecase/reader"
)

// ArticleDTO is an article as returned by GET /api/articles.
type ArticleDTO struct {
	ID             entity.ID  `json:"id" example:"42"`
	Title          string     `json:"title" example:"BTC franchit un nouveau record"`
	Summary        string     `json:"summary,omitempty"`
	AISummary      string     `json:"ai_summary,omitempty"`
	DisplaySummary string     `json:"display_summary"`
	Topic          string     `json:"topic" example:"Crypto"`
	Source         string     `json:"source" example:"CoinDesk"`
	Date           string     `json:"date" example:"2024-05-01T10:00:00Z"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	Tags           []string   `json:"tags"`
	URL            string     `json:"url"`
	Score          *float64   `json:"score,omitempty"`
}

// ArticlesResponse is the body of GET /api/articles.
type ArticlesResponse struct {
	Topic    string       `json:"topic"`
	Query    string       `json:"query"`
	Order    reader.Order `json:"order"`
	Spice    int          `json:"spice"`
	Tone     reader.Level `json:"tone"`
	Loading  bool         `json:"loading"`
	Error    string       `json:"error"`
	Count    int          `json:"count"`
	Articles []ArticleDTO `json:"articles"`
}

// FeedDTO is a followed feed.
type FeedDTO struct {
	Title   string `json:"title"`
	Topic   string `json:"topic"`
	URL     string `json:"url,omitempty"`
	Derived bool   `json:"derived"`
}

// FeedRequest is the body of POST /api/feeds.
type FeedRequest struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Topic string `json:"topic"`
}

func toArticleDTO(v reader.ArticleView) ArticleDTO {
	dto := ArticleDTO{
		ID:             v.ID,
		Title:          v.Title,
		Summary:        v.Summary,
		AISummary:      v.AISummary,
		DisplaySummary: v.DisplaySummary,
		Topic:          v.EffectiveTopic,
		Source:         v.Source,
		Date:           v.Date,
		Tags:           v.TagList(),
		URL:            v.URL,
		Score:          v.Score,
	}
	if v.HasDate {
		t := v.PublishedAt.UTC()
		dto.PublishedAt = &t
	}
	return dto
}

// NewArticlesResponse converts a page into its JSON form.
func NewArticlesResponse(p reader.Page) ArticlesResponse {
	articles := make([]ArticleDTO, 0, len(p.Articles))
	for _, v := range p.Articles {
		articles = append(articles, toArticleDTO(v))
	}
	return ArticlesResponse{
		Topic:    p.Criteria.Topic,
		Query:    p.Criteria.Query,
		Order:    p.Criteria.Order,
		Spice:    p.Spice,
		Tone:     p.Tone,
		Loading:  p.Loading,
		Error:    p.Error,
		Count:    len(articles),
		Articles: articles,
	}
}

func toFeedDTO(f entity.FollowedFeed) FeedDTO {
	return FeedDTO{Title: f.Title, Topic: f.Topic, URL: f.URL, Derived: f.Derived()}
}

func toFeedDTOs(feeds []entity.FollowedFeed) []FeedDTO {
	out := make([]FeedDTO, 0, len(feeds))
	for _, f := range feeds {
		out = append(out, toFeedDTO(f))
	}
	return out
}
