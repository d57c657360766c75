package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/scipunch/feedlib/document"
)

// Options tune the HTTP side of the RSS decoder
type Options struct {
	UserAgent string
	Timeout   time.Duration
	// Client overrides the HTTP client, Timeout is ignored when set
	Client *http.Client
}

// RSSDecoder fetches RSS, Atom and JSON feeds using gofeed
type RSSDecoder struct {
	userAgent string
	client    *http.Client
}

// NewRSSDecoder creates a new RSS decoder
func NewRSSDecoder(opts Options) *RSSDecoder {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &RSSDecoder{
		userAgent: opts.UserAgent,
		client:    client,
	}
}

// Decode retrieves and parses the feed at url
func (d *RSSDecoder) Decode(ctx context.Context, url string) (document.Document, error) {
	// gofeed.Parser keeps per-parse state, so every call gets its own
	parser := gofeed.NewParser()
	parser.Client = d.client
	if d.userAgent != "" {
		parser.UserAgent = d.userAgent
	}

	feed, err := parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return document.Document{}, fmt.Errorf("failed to parse feed at '%s' with %w", url, err)
	}
	return FromFeed(feed), nil
}
