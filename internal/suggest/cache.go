package suggest

import "sync"

// Cache hands out one Source per endpoint so repeated mounts share a single
// fetch.
type Cache struct {
	fetcher Fetcher

	mu      sync.Mutex
	sources map[string]*Source
}

func NewCache(fetcher Fetcher) *Cache {
	return &Cache{fetcher: fetcher, sources: make(map[string]*Source)}
}

// Source returns the cached Source for endpoint, creating it on first use.
func (c *Cache) Source(endpoint string) *Source {
	c.mu.Lock()
	defer c.mu.Unlock()
	if src, ok := c.sources[endpoint]; ok {
		return src
	}
	src := New(c.fetcher, endpoint)
	c.sources[endpoint] = src
	return src
}
