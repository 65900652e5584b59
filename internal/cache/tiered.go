package cache

import "time"

// Tiered composes caches from fastest to most durable. Reads walk the
// tiers in order and promote hits into every faster tier; writes and
// invalidations touch all tiers.
type Tiered struct {
	tiers []Cache
}

// NewTiered creates a tiered cache. The usual arrangement is memory
// in front of disk.
func NewTiered(tiers ...Cache) *Tiered {
	return &Tiered{tiers: tiers}
}

func (t *Tiered) Get(key string) ([]byte, bool) {
	for i, tier := range t.tiers {
		val, found := tier.Get(key)
		if !found {
			continue
		}
		for j := 0; j < i; j++ {
			_ = t.tiers[j].Set(key, val, 0)
		}
		return val, true
	}
	return nil, false
}

func (t *Tiered) Set(key string, value []byte, ttl time.Duration) error {
	var firstErr error
	for _, tier := range t.tiers {
		if err := tier.Set(key, value, ttl); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t *Tiered) Delete(key string) error {
	var firstErr error
	for _, tier := range t.tiers {
		if err := tier.Delete(key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t *Tiered) Clear() error {
	var firstErr error
	for _, tier := range t.tiers {
		if err := tier.Clear(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
