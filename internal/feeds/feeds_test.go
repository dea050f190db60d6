package feeds_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"ytsum/internal/feeds"
	"ytsum/internal/services"
)

const atomFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:yt="http://www.youtube.com/xml/schemas/2015">
  <title>Channel</title>
  <entry>
    <yt:videoId>aaa</yt:videoId>
    <title>First</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=aaa"/>
  </entry>
  <entry>
    <yt:videoId>bbb</yt:videoId>
    <title>Second</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=bbb"/>
  </entry>
  <entry>
    <yt:videoId>ccc</yt:videoId>
    <title>Third</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=ccc"/>
  </entry>
</feed>`

func serveFeed(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestExpandAtomFeed(t *testing.T) {
	server := serveFeed(t, atomFeed)
	entries, err := feeds.NewExpander(feeds.WithHTTPClient(server.Client())).Expand(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	want := []string{
		"https://www.youtube.com/watch?v=aaa",
		"https://www.youtube.com/watch?v=bbb",
		"https://www.youtube.com/watch?v=ccc",
	}
	if got := feeds.URLs(entries); !slices.Equal(got, want) {
		t.Fatalf("unexpected urls %v", got)
	}
	if entries[0].Title != "First" {
		t.Fatalf("unexpected title %q", entries[0].Title)
	}
}

func TestExpandHonorsLimit(t *testing.T) {
	server := serveFeed(t, atomFeed)
	entries, err := feeds.NewExpander(feeds.WithLimit(2)).Expand(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestExpandEmptyFeed(t *testing.T) {
	server := serveFeed(t, `<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom"><title>x</title></feed>`)
	_, err := feeds.NewExpander().Expand(context.Background(), server.URL)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found marker, got %v", err)
	}
}

func TestFeedURL(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"channel:UC123", "https://www.youtube.com/feeds/videos.xml?channel_id=UC123"},
		{"Playlist:PLabc", "https://www.youtube.com/feeds/videos.xml?playlist_id=PLabc"},
		{"https://example.com/feed.xml", "https://example.com/feed.xml"},
	}
	for _, tt := range tests {
		got, err := feeds.FeedURL(tt.ref)
		if err != nil {
			t.Fatalf("FeedURL(%q) returned error: %v", tt.ref, err)
		}
		if got != tt.want {
			t.Fatalf("FeedURL(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
	if _, err := feeds.FeedURL(" "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
