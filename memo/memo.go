package memo

import (
	"sync"
)

// Stats counts lookups served from the cache and lookups that had to compute.
type Stats struct {
	Hits   uint64
	Misses uint64
}

// Cache maps argument keys to computed results. It never evicts.
//
// The lock guards the table only and is released while compute runs, so a
// computation may call back into the same cache (recursion). The price is
// that two goroutines missing on the same key at the same time may both
// compute it; the later store wins. For a pure function that is harmless.
type Cache[R any] struct {
	mu    sync.Mutex
	table *trie[R]
	stats Stats
}

func NewCache[R any]() *Cache[R] {
	return &Cache[R]{table: newTrie[R]()}
}

// GetOrCompute returns the stored result for key, or runs compute and stores its result.
// A failed computation is not stored; the next call for the same key computes again.
func (c *Cache[R]) GetOrCompute(key Key, compute func() (R, error)) (R, error) {
	if v, ok := c.load(key); ok {
		return v, nil
	}

	v, err := compute()
	if err != nil {
		return v, err
	}

	c.mu.Lock()
	c.table.Store(key, v)
	c.mu.Unlock()
	return v, nil
}

func (c *Cache[R]) load(key Key) (R, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.table.Load(key)
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	return v, ok
}

// Len is the number of stored results.
func (c *Cache[R]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table.Len()
}

func (c *Cache[R]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
