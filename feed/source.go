package feed

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/scipunch/feedlib/document"
	"github.com/scipunch/feedlib/fetcher"
	"github.com/scipunch/feedlib/filter"
)

// Source is a single subscribed feed endpoint
type Source struct {
	url     string
	tags    []string
	decoder fetcher.Decoder
	logger  *slog.Logger
	now     func() time.Time

	mu          sync.Mutex
	lastFetched time.Time
}

type Option func(*Source)

func WithTags(tags ...string) Option {
	return func(s *Source) {
		s.tags = slices.Clone(tags)
	}
}

// WithDecoder replaces the default gofeed based decoder
func WithDecoder(d fetcher.Decoder) Option {
	return func(s *Source) {
		s.decoder = d
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Source) {
		s.logger = l
	}
}

// WithClock sets the time source used for LastFetched
func WithClock(now func() time.Time) Option {
	return func(s *Source) {
		s.now = now
	}
}

// NewSource creates a source for url, it is not fetched until Parse is called
func NewSource(url string, opts ...Option) *Source {
	s := &Source{
		url:    url,
		tags:   []string{},
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.decoder == nil {
		s.decoder = fetcher.NewRSSDecoder(fetcher.Options{})
	}
	return s
}

func (s *Source) URL() string {
	return s.url
}

func (s *Source) Tags() []string {
	return slices.Clone(s.tags)
}

// LastFetched returns the time of the last successful Parse, zero if never
func (s *Source) LastFetched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFetched
}

// Parse fetches and decodes the feed, keeping only fields when any are given.
//
// A failed fetch is logged and yields document.Empty(); LastFetched only moves
// forward on success.
func (s *Source) Parse(ctx context.Context, fields ...string) document.Document {
	doc, err := s.decoder.Decode(ctx, s.url)
	if err != nil {
		s.logger.Error("malformed feed", "url", s.url, "error", err)
		return document.Empty()
	}

	s.touch(s.now())

	if len(fields) > 0 {
		return filter.Project(doc, fields)
	}
	return doc
}

func (s *Source) touch(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.After(s.lastFetched) {
		s.lastFetched = t
	}
}

func (s *Source) String() string {
	var fetched int64
	if last := s.LastFetched(); !last.IsZero() {
		fetched = last.Unix()
	}
	return fmt.Sprintf("Source(%s, %v, %d)", s.url, s.tags, fetched)
}
