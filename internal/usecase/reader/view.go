package reader

import (
	"time"

	"fluxactu/internal/domain/entity"
)

// ArticleView is an article prepared for display.
type ArticleView struct {
	entity.Article
	// EffectiveTopic is the topic with the fallback applied.
	EffectiveTopic string
	// DisplaySummary is the AI summary or the toned summary.
	DisplaySummary string
	// PublishedAt is the parsed date; zero when HasDate is false.
	PublishedAt time.Time
	HasDate     bool
}

// Page is everything needed to render one view of the session.
type Page struct {
	Topics   []string
	Criteria Criteria
	Spice    int
	Tone     Level
	Articles []ArticleView
	Feeds    []entity.FollowedFeed
	Loading  bool
	Error    string
}

// NewArticleView prepares a for display at spice.
func NewArticleView(a entity.Article, spice int) ArticleView {
	published, ok := a.PublishedAt()
	return ArticleView{
		Article:        a,
		EffectiveTopic: a.EffectiveTopic(),
		DisplaySummary: DisplaySummary(a, spice),
		PublishedAt:    published,
		HasDate:        ok,
	}
}

// BuildPage derives the page model from a snapshot.
func BuildPage(snap Snapshot, c Criteria, spice int) Page {
	if c.Topic == "" {
		c.Topic = AllTopics
	}
	if c.Order == "" {
		c.Order = OrderByDate
	}

	filtered := Filter(snap.Articles, c)
	views := make([]ArticleView, 0, len(filtered))
	for _, a := range filtered {
		views = append(views, NewArticleView(a, spice))
	}

	return Page{
		Topics:   Topics(snap.Articles),
		Criteria: c,
		Spice:    spice,
		Tone:     ToneLevel(spice),
		Articles: views,
		Feeds:    snap.Feeds(),
		Loading:  snap.Loading,
		Error:    snap.Error,
	}
}
