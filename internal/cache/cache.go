package cache

import "time"

// Cache defines the interface for the extracted page-text cache
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds a namespaced cache key from a document content hash
func Key(contentHash string) string {
	return "regsight:v1:pages:" + contentHash
}
