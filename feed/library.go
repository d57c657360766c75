package feed

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/scipunch/feedlib/document"
)

// DefaultWorkers bounds the number of concurrent fetches in ParseAll
const DefaultWorkers = 10

// Library is an ordered collection of sources. Insertion order is the order
// in which ParseAll returns results.
type Library struct {
	mu      sync.RWMutex
	sources []*Source
	workers int
	logger  *slog.Logger
}

// NewLibrary creates an empty library, workers <= 0 means DefaultWorkers
func NewLibrary(logger *slog.Logger, workers int) *Library {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Library{
		workers: workers,
		logger:  logger,
	}
}

// Add appends sources, duplicates are allowed
func (l *Library) Add(sources ...*Source) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sources = append(l.sources, sources...)
}

// Remove drops the first occurrence of src. Removing a source that is not
// in the library only logs a warning.
func (l *Library) Remove(src *Source) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := slices.Index(l.sources, src)
	if idx < 0 || src == nil {
		desc := "<nil>"
		if src != nil {
			desc = src.String()
		}
		l.logger.Warn("feed not found in library", "feed", desc)
		return
	}
	l.sources = slices.Delete(l.sources, idx, idx+1)
}

// RemoveURL drops every source with the given url
func (l *Library) RemoveURL(url string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sources = lo.Reject(l.sources, func(s *Source, _ int) bool {
		return s.URL() == url
	})
}

// List returns a snapshot of the sources in insertion order
func (l *Library) List() []*Source {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.sources)
}

func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.sources)
}

// Tags returns the union of all source tags, sorted
func (l *Library) Tags() []string {
	tags := lo.Uniq(lo.FlatMap(l.List(), func(s *Source, _ int) []string {
		return s.Tags()
	}))
	slices.Sort(tags)
	return tags
}

// ParseAll parses every source on a pool of at most workers goroutines and
// blocks until all of them are done. Results keep the order of the sources;
// sources that failed or produced nothing are dropped.
func (l *Library) ParseAll(ctx context.Context, fields ...string) []document.Document {
	start := time.Now()
	sources := l.List()
	results := make([]document.Document, len(sources))

	var g errgroup.Group
	g.SetLimit(l.workers)
	for i, src := range sources {
		g.Go(func() error {
			results[i] = src.Parse(ctx, fields...)
			return nil
		})
	}
	_ = g.Wait()

	parsed := lo.Filter(results, func(doc document.Document, _ int) bool {
		return !doc.IsEmpty()
	})
	l.logger.Debug("parsed all feeds",
		"sources", len(sources),
		"results", len(parsed),
		"duration", time.Since(start))
	return parsed
}
