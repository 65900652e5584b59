package pdfx

import (
	"encoding/json"

	"github.com/regsight/regsight/internal/cache"
)

// Extractor extracts page text with an optional cache in front, keyed
// by document content hash. A nil cache means every call re-extracts.
type Extractor struct {
	cache cache.Cache
}

// NewExtractor creates an extractor backed by the given cache
func NewExtractor(c cache.Cache) *Extractor {
	return &Extractor{cache: c}
}

// Pages returns the per-page text for the document, consulting the
// cache first. Cache failures fall back to extraction silently.
func (e *Extractor) Pages(path string) (map[int]string, error) {
	if e.cache == nil {
		return ExtractPages(path)
	}

	key := ""
	if hash, err := ContentKey(path); err == nil {
		key = cache.Key(hash)
		if data, found := e.cache.Get(key); found {
			var pages map[int]string
			if err := json.Unmarshal(data, &pages); err == nil {
				return pages, nil
			}
		}
	}

	pages, err := ExtractPages(path)
	if err != nil {
		return nil, err
	}

	if key != "" {
		if data, err := json.Marshal(pages); err == nil {
			_ = e.cache.Set(key, data, 0)
		}
	}
	return pages, nil
}
