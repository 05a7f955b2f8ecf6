package transport

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// responseCache keeps successful anonymous GET payloads keyed by full URL.
type responseCache struct {
	entries *expirable.LRU[string, []byte]
}

func newResponseCache(size int, ttl time.Duration) *responseCache {
	if size <= 0 {
		return nil
	}
	return &responseCache{entries: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (c *responseCache) get(key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	return c.entries.Get(key)
}

func (c *responseCache) add(key string, payload []byte) {
	if c == nil {
		return
	}
	c.entries.Add(key, payload)
}

func (c *responseCache) purge() {
	if c == nil {
		return
	}
	c.entries.Purge()
}

func (c *responseCache) len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}
