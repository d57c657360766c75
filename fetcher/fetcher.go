package fetcher

import (
	"context"

	"github.com/scipunch/feedlib/document"
)

// Decoder fetches a feed endpoint and decodes it into a document tree.
// Any transport or format problem is reported as an error.
type Decoder interface {
	Decode(ctx context.Context, url string) (document.Document, error)
}
