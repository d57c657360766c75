package fetcher

import (
	"github.com/scipunch/feedlib/config"
)

// FromConfig creates the decoder described by the fetch section of the config
func FromConfig(cfg config.FetchConfig) *RSSDecoder {
	return NewRSSDecoder(Options{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout(),
	})
}
