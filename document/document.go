package document

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// EntriesKey is the feed-level key holding the ordered entry documents
const EntriesKey = "entries"

// Document is a loosely-typed, insertion-ordered feed tree.
//
// Values are one of string, []string, Document or []Document. The zero value
// is a read-only empty document; use New for documents that are written to.
type Document struct {
	fields *orderedmap.OrderedMap[string, any]
}

// New creates an empty writable document
func New() Document {
	return Document{fields: orderedmap.New[string, any]()}
}

// Empty returns the marker for "no usable data produced"
func Empty() Document {
	return New()
}

// Set stores value under key, keeping the original position of an existing key
func (d Document) Set(key string, value any) {
	d.fields.Set(key, value)
}

// Get returns the value stored under key
func (d Document) Get(key string) (any, bool) {
	if d.fields == nil {
		return nil, false
	}
	return d.fields.Get(key)
}

// Has reports whether key is present
func (d Document) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// String returns the value under key if it is a string
func (d Document) String(key string) string {
	v, _ := d.Get(key)
	s, _ := v.(string)
	return s
}

// Entries returns the entry documents if the document carries an entries list
func (d Document) Entries() ([]Document, bool) {
	v, ok := d.Get(EntriesKey)
	if !ok {
		return nil, false
	}
	entries, ok := v.([]Document)
	return entries, ok
}

func (d Document) Len() int {
	if d.fields == nil {
		return 0
	}
	return d.fields.Len()
}

// IsEmpty reports whether the document is the empty result
func (d Document) IsEmpty() bool {
	return d.Len() == 0
}

// Keys returns the keys in insertion order
func (d Document) Keys() []string {
	if d.fields == nil {
		return nil
	}
	keys := make([]string, 0, d.fields.Len())
	for pair := d.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Map converts the document into plain maps and slices, recursively
func (d Document) Map() map[string]any {
	out := make(map[string]any, d.Len())
	if d.fields == nil {
		return out
	}
	for pair := d.fields.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = plain(pair.Value)
	}
	return out
}

func plain(v any) any {
	switch val := v.(type) {
	case Document:
		return val.Map()
	case []Document:
		out := make([]map[string]any, len(val))
		for i, doc := range val {
			out[i] = doc.Map()
		}
		return out
	default:
		return v
	}
}

// MarshalJSON encodes the document as a JSON object preserving key order
func (d Document) MarshalJSON() ([]byte, error) {
	if d.fields == nil {
		return json.Marshal(struct{}{})
	}
	return d.fields.MarshalJSON()
}
