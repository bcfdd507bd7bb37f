package entity

// FollowedFeed is a display-only entry for a source the user is tracking.
// Feeds derived from article sources carry no URL.
type FollowedFeed struct {
	Title string `json:"title"`
	Topic string `json:"topic"`
	URL   string `json:"url,omitempty"`
}

// Derived reports whether the feed was derived from an observed article source.
func (f FollowedFeed) Derived() bool {
	return f.URL == ""
}
