package filter

import (
	"strings"

	"github.com/samber/lo"

	"github.com/scipunch/feedlib/document"
)

// Project keeps only the requested fields of a parsed feed.
//
// Filtering covers exactly two levels: the feed itself and every document in
// its entries list. An entries list is always carried over, projected entry
// by entry, even if fields does not name it. Deeper nesting is copied as is.
func Project(doc document.Document, fields []string) document.Document {
	fields = lo.Uniq(fields)

	entries, hasEntries := doc.Entries()
	out := document.New()
	for _, field := range fields {
		if hasEntries && field == document.EntriesKey {
			continue
		}
		if v, ok := doc.Get(field); ok {
			out.Set(field, v)
		}
	}
	if !hasEntries {
		return out
	}

	projected := make([]document.Document, len(entries))
	for i, entry := range entries {
		projected[i] = pick(entry, fields)
	}
	out.Set(document.EntriesKey, projected)
	return out
}

// pick filters a single entry, there is no recursion below this level
func pick(entry document.Document, fields []string) document.Document {
	out := document.New()
	for _, field := range fields {
		if v, ok := entry.Get(field); ok {
			out.Set(field, v)
		}
	}
	return out
}

// ParseFields splits a comma separated field list, e.g. "title, link"
func ParseFields(s string) []string {
	parts := lo.Map(strings.Split(s, ","), func(p string, _ int) string {
		return strings.TrimSpace(p)
	})
	return lo.Uniq(lo.Compact(parts))
}
