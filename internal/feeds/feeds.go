package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"

	"ytsum/internal/services"
)

const youtubeFeedBase = "https://www.youtube.com/feeds/videos.xml"

// Entry is one video listed in a feed.
type Entry struct {
	URL   string
	Title string
}

// Option configures the expander.
type Option func(*Expander)

// WithHTTPClient overrides the client used to fetch feeds.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Expander) {
		if client != nil {
			e.parser.Client = client
		}
	}
}

// WithLimit caps the number of entries returned per feed. Zero means no cap.
func WithLimit(limit int) Option {
	return func(e *Expander) {
		if limit > 0 {
			e.limit = limit
		}
	}
}

// Expander fetches RSS/Atom feeds and returns their entry links.
type Expander struct {
	parser *gofeed.Parser
	limit  int
}

// NewExpander constructs an expander.
func NewExpander(opts ...Option) *Expander {
	e := &Expander{parser: gofeed.NewParser()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FeedURL maps a feed reference to a fetchable URL. "channel:<id>" and
// "playlist:<id>" expand to the YouTube feed endpoint; anything else is used
// as given.
func FeedURL(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", services.Wrap(services.ErrValidation, "feed", "expand", "feed reference required", nil)
	}
	kind, id, found := strings.Cut(ref, ":")
	if found {
		switch strings.ToLower(kind) {
		case "channel":
			return youtubeFeedBase + "?channel_id=" + url.QueryEscape(id), nil
		case "playlist":
			return youtubeFeedBase + "?playlist_id=" + url.QueryEscape(id), nil
		}
	}
	return ref, nil
}

// Expand fetches the feed referenced by ref and returns its entries in feed order.
func (e *Expander) Expand(ctx context.Context, ref string) ([]Entry, error) {
	feedURL, err := FeedURL(ref)
	if err != nil {
		return nil, err
	}
	feed, err := e.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "feed", "expand", "parse feed "+feedURL, err)
	}
	if feed == nil || len(feed.Items) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "feed", "expand", "feed contains no items", nil)
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || strings.TrimSpace(item.Link) == "" {
			continue
		}
		entries = append(entries, Entry{URL: strings.TrimSpace(item.Link), Title: item.Title})
		if e.limit > 0 && len(entries) >= e.limit {
			break
		}
	}
	if len(entries) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "feed", "expand", fmt.Sprintf("no links in %d feed items", len(feed.Items)), nil)
	}
	return entries, nil
}

// URLs returns only the links of entries.
func URLs(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.URL)
	}
	return out
}
