package reader_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fluxactu/internal/domain/entity"
	"fluxactu/internal/usecase/reader"
)

func TestDeriveFeeds(t *testing.T) {
	articles := []entity.Article{
		{Source: "CoinDesk", Topic: "Crypto"},
		{Source: "Reuters", Topic: "Macro"},
		{Source: "CoinDesk", Topic: "Marchés"},
		{Source: ""},
		{Source: "Blog"},
	}

	want := []entity.FollowedFeed{
		{Title: "CoinDesk", Topic: "Marchés"},
		{Title: "Reuters", Topic: "Macro"},
		{Title: "Blog", Topic: "Divers"},
	}
	if diff := cmp.Diff(want, reader.DeriveFeeds(articles)); diff != "" {
		t.Errorf("DeriveFeeds() mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, reader.DeriveFeeds(nil))
}

func TestDeriveFeeds_OnePerSource(t *testing.T) {
	feeds := reader.DeriveFeeds(sampleArticles())
	seen := map[string]bool{}
	for _, f := range feeds {
		assert.False(t, seen[f.Title], "duplicate feed %q", f.Title)
		seen[f.Title] = true
		assert.True(t, f.Derived())
	}
	assert.Len(t, feeds, 3)
}

func TestNewFeed(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		title   string
		topic   string
		want    *entity.FollowedFeed
		wantErr bool
	}{
		{
			name: "title from host",
			url:  "https://example.com/feed.xml",
			want: &entity.FollowedFeed{URL: "https://example.com/feed.xml", Title: "example.com", Topic: "Divers"},
		},
		{
			name: "www prefix removed",
			url:  "https://www.lemonde.fr/rss/une.xml",
			want: &entity.FollowedFeed{URL: "https://www.lemonde.fr/rss/une.xml", Title: "lemonde.fr", Topic: "Divers"},
		},
		{
			name:  "explicit title and topic",
			url:   "https://example.com/feed.xml",
			title: "Exemple",
			topic: "IA",
			want:  &entity.FollowedFeed{URL: "https://example.com/feed.xml", Title: "Exemple", Topic: "IA"},
		},
		{
			name:  "inputs trimmed",
			url:   "  https://example.com/a  ",
			topic: "  Macro ",
			want:  &entity.FollowedFeed{URL: "https://example.com/a", Title: "example.com", Topic: "Macro"},
		},
		{
			name:  "title given skips URL parsing",
			url:   "not-a-url",
			title: "Local",
			want:  &entity.FollowedFeed{URL: "not-a-url", Title: "Local", Topic: "Divers"},
		},
		{name: "empty url ignored", url: ""},
		{name: "blank url ignored", url: "   ", title: "x"},
		{name: "malformed url", url: "example.com/feed", wantErr: true},
		{name: "no host", url: "https:///feed.xml", wantErr: true},
		{
			name: "hostless scheme gives empty title",
			url:  "mailto:a@b",
			want: &entity.FollowedFeed{URL: "mailto:a@b", Title: "", Topic: "Divers"},
		},
		{
			name: "ipv6 host keeps brackets",
			url:  "http://[2001:db8::1]/rss",
			want: &entity.FollowedFeed{URL: "http://[2001:db8::1]/rss", Title: "[2001:db8::1]", Topic: "Divers"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reader.NewFeed(tt.url, tt.title, tt.topic)
			if tt.wantErr {
				assert.ErrorIs(t, err, reader.ErrInvalidFeedURL)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
