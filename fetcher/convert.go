package fetcher

import (
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/scipunch/feedlib/document"
)

// FromFeed converts a gofeed.Feed into a document using feedparser style keys.
// Empty values are left out.
func FromFeed(f *gofeed.Feed) document.Document {
	doc := document.New()
	setString(doc, "title", f.Title)
	setString(doc, "subtitle", f.Description)
	setString(doc, "description", f.Description)
	setString(doc, "link", f.Link)
	setStrings(doc, "links", f.Links)
	setString(doc, "feed_link", f.FeedLink)
	setString(doc, "updated", timestamp(f.Updated, f.UpdatedParsed))
	setString(doc, "published", timestamp(f.Published, f.PublishedParsed))
	setString(doc, "language", f.Language)
	setAuthor(doc, f.Authors, f.Author)
	setImage(doc, f.Image)
	setStrings(doc, "tags", f.Categories)
	setString(doc, "rights", f.Copyright)
	setString(doc, "generator", f.Generator)
	setString(doc, "feed_type", f.FeedType)
	setString(doc, "feed_version", f.FeedVersion)

	entries := make([]document.Document, 0, len(f.Items))
	for _, item := range f.Items {
		if item == nil {
			continue
		}
		entries = append(entries, fromItem(item))
	}
	doc.Set(document.EntriesKey, entries)
	return doc
}

func fromItem(item *gofeed.Item) document.Document {
	doc := document.New()
	setString(doc, "title", item.Title)
	setString(doc, "link", item.Link)
	setStrings(doc, "links", item.Links)
	setString(doc, "id", item.GUID)
	setString(doc, "summary", item.Description)
	setString(doc, "description", item.Description)
	setString(doc, "content", item.Content)
	setString(doc, "published", timestamp(item.Published, item.PublishedParsed))
	setString(doc, "updated", timestamp(item.Updated, item.UpdatedParsed))
	setAuthor(doc, item.Authors, item.Author)
	setStrings(doc, "tags", item.Categories)
	setImage(doc, item.Image)

	var enclosures []document.Document
	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		e := document.New()
		setString(e, "href", enc.URL)
		setString(e, "length", enc.Length)
		setString(e, "type", enc.Type)
		enclosures = append(enclosures, e)
	}
	if len(enclosures) > 0 {
		doc.Set("enclosures", enclosures)
	}
	return doc
}

// timestamp prefers the parsed date in RFC 3339 and falls back to the raw text
func timestamp(raw string, parsed *time.Time) string {
	if parsed != nil && !parsed.IsZero() {
		return parsed.UTC().Format(time.RFC3339)
	}
	return raw
}

func setString(doc document.Document, key, value string) {
	if value != "" {
		doc.Set(key, value)
	}
}

func setStrings(doc document.Document, key string, values []string) {
	if len(values) > 0 {
		doc.Set(key, values)
	}
}

func setAuthor(doc document.Document, authors []*gofeed.Person, fallback *gofeed.Person) {
	person := fallback
	if len(authors) > 0 && authors[0] != nil {
		person = authors[0]
	}
	if person == nil || (person.Name == "" && person.Email == "") {
		return
	}

	detail := document.New()
	setString(detail, "name", person.Name)
	setString(detail, "email", person.Email)
	if person.Name != "" {
		doc.Set("author", person.Name)
	} else {
		doc.Set("author", person.Email)
	}
	doc.Set("author_detail", detail)
}

func setImage(doc document.Document, img *gofeed.Image) {
	if img == nil || img.URL == "" {
		return
	}
	image := document.New()
	setString(image, "href", img.URL)
	setString(image, "title", img.Title)
	doc.Set("image", image)
}
