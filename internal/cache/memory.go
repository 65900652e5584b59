package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory caches page text for the life of the process. Zero ttl means
// entries never expire, which suits single-document runs.
type Memory struct {
	entries *gocache.Cache
}

// NewMemory creates an in-process cache with the given default TTL
func NewMemory(ttl time.Duration) *Memory {
	cleanup := ttl / 2
	if cleanup < time.Minute {
		cleanup = 10 * time.Minute
	}
	return &Memory{entries: gocache.New(ttl, cleanup)}
}

func (m *Memory) Get(key string) ([]byte, bool) {
	if val, found := m.entries.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

func (m *Memory) Set(key string, value []byte, ttl time.Duration) error {
	m.entries.Set(key, value, ttl)
	return nil
}

func (m *Memory) Delete(key string) error {
	m.entries.Delete(key)
	return nil
}

func (m *Memory) Clear() error {
	m.entries.Flush()
	return nil
}
