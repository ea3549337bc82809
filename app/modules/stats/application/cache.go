package statsservice

import (
	"sync"
	"time"
)

// overviewCache holds overviews per since-instant until the ledger changes.
// gen advances on every clear so a read that raced an invalidation is not stored.
type overviewCache struct {
	mu      sync.RWMutex
	gen     uint64
	entries map[int64]*Overview
}

func newOverviewCache() *overviewCache {
	return &overviewCache{entries: make(map[int64]*Overview)}
}

func cacheKey(since time.Time) int64 {
	if since.IsZero() {
		return 0
	}
	return since.UnixNano()
}

// get returns a copy of the cached overview, or the current generation on a miss.
func (c *overviewCache) get(since time.Time) (*Overview, uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	o, ok := c.entries[cacheKey(since)]
	if !ok {
		return nil, c.gen, false
	}
	cp := *o
	return &cp, c.gen, true
}

// put stores o only if no clear happened since gen was taken.
func (c *overviewCache) put(since time.Time, gen uint64, o *Overview) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	cp := *o
	c.entries[cacheKey(since)] = &cp
	return true
}

func (c *overviewCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.entries = make(map[int64]*Overview)
}
