package feed

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/scipunch/feedlib/document"
)

// fakeDecoder serves canned documents with optional per-url latency
type fakeDecoder struct {
	mu    sync.Mutex
	docs  map[string]document.Document
	errs  map[string]error
	delay map[string]time.Duration
	calls map[string]int

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func newFakeDecoder() *fakeDecoder {
	return &fakeDecoder{
		docs:  make(map[string]document.Document),
		errs:  make(map[string]error),
		delay: make(map[string]time.Duration),
		calls: make(map[string]int),
	}
}

func (f *fakeDecoder) Decode(ctx context.Context, url string) (document.Document, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		cur := f.maxInFlight.Load()
		if n <= cur || f.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls[url]++
	doc, hasDoc := f.docs[url]
	err := f.errs[url]
	delay := f.delay[url]
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return document.Document{}, err
	}
	if !hasDoc {
		return document.Document{}, errors.New("failed to detect feed type")
	}
	return doc, nil
}

func (f *fakeDecoder) callCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

func feedDoc(title string, entryTitles ...string) document.Document {
	doc := document.New()
	doc.Set("title", title)
	doc.Set("link", "https://example.com/"+title)
	entries := make([]document.Document, 0, len(entryTitles))
	for _, et := range entryTitles {
		e := document.New()
		e.Set("title", et)
		e.Set("summary", "about "+et)
		entries = append(entries, e)
	}
	doc.Set(document.EntriesKey, entries)
	return doc
}

func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
