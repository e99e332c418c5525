package pairing

import "sync"

// DefaultCacheHigh is the insertion count that triggers a prune.
const DefaultCacheHigh = 1000

// pairCache holds resolved pairings indexed by both member ids. Eviction is
// insertion-ordered: once the pair count exceeds the high-water mark, the
// oldest entries are dropped until only the newest low-water entries remain.
type pairCache struct {
	mu    sync.RWMutex
	high  int
	low   int
	order []*Pairing
	byID  map[int64]*Pairing
}

func newPairCache(high int) *pairCache {
	if high < 2 {
		high = DefaultCacheHigh
	}
	return &pairCache{
		high: high,
		low:  high / 2,
		byID: make(map[int64]*Pairing),
	}
}

// Put records a pairing under both of its ids. Re-adding an already cached
// pairing refreshes its position in the eviction order.
func (c *pairCache) Put(p Pairing) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.byID[p.TrackID]; ok && *existing == p {
		c.removeLocked(existing)
	}
	entry := &p
	c.order = append(c.order, entry)
	c.byID[p.TrackID] = entry
	c.byID[p.VideoID] = entry
	if len(c.order) > c.high {
		c.pruneLocked()
	}
}

func (c *pairCache) removeLocked(target *Pairing) {
	for i, entry := range c.order {
		if entry == target {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	delete(c.byID, target.TrackID)
	delete(c.byID, target.VideoID)
}

func (c *pairCache) pruneLocked() {
	keep := c.order[len(c.order)-c.low:]
	c.order = append(make([]*Pairing, 0, c.high+1), keep...)
	c.byID = make(map[int64]*Pairing, 2*len(c.order))
	for _, entry := range c.order {
		c.byID[entry.TrackID] = entry
		c.byID[entry.VideoID] = entry
	}
}

// Get looks a pairing up by either member id.
func (c *pairCache) Get(id int64) (Pairing, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.byID[id]
	if !ok {
		return Pairing{}, false
	}
	return *entry, true
}

// Len reports the number of cached pairings.
func (c *pairCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// Snapshot returns the cached pairings in insertion order, oldest first.
func (c *pairCache) Snapshot() []Pairing {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Pairing, len(c.order))
	for i, entry := range c.order {
		out[i] = *entry
	}
	return out
}

func (c *pairCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = nil
	c.byID = make(map[int64]*Pairing)
}

// negativeCache remembers resolution keys that previously failed so repeat
// requests short-circuit without touching the catalog. Bounds mirror the
// pair cache: prune to the newest half once the high-water mark is crossed.
type negativeCache struct {
	mu    sync.RWMutex
	high  int
	low   int
	order []string
	seen  map[string]struct{}
}

func newNegativeCache(high int) *negativeCache {
	if high < 2 {
		high = DefaultCacheHigh
	}
	return &negativeCache{
		high: high,
		low:  high / 2,
		seen: make(map[string]struct{}),
	}
}

func (c *negativeCache) Add(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.seen[key]; ok {
		return
	}
	c.order = append(c.order, key)
	c.seen[key] = struct{}{}
	if len(c.order) > c.high {
		keep := c.order[len(c.order)-c.low:]
		c.order = append(make([]string, 0, c.high+1), keep...)
		c.seen = make(map[string]struct{}, len(c.order))
		for _, k := range c.order {
			c.seen[k] = struct{}{}
		}
	}
}

func (c *negativeCache) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.seen[key]
	return ok
}

func (c *negativeCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

func (c *negativeCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = nil
	c.seen = make(map[string]struct{})
}
