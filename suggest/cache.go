package suggest

import "sync"

// Cache holds suggestion lists keyed by the exact-case word. An empty list is
// a present entry and counts as a hit.
//
// Every Invalidate or Reset advances the cache epoch. Fetches started under an
// older epoch store their result with PutSince, which drops it.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]string
	epoch   uint64
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string][]string)}
}

func (c *Cache) Get(word string) ([]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.entries[word]
	if !ok {
		return nil, false
	}
	return cloneList(s), true
}

func (c *Cache) Put(word string, suggestions []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string][]string)
	}
	c.entries[word] = cloneList(suggestions)
}

// PutSince stores suggestions only if the cache has not been invalidated or
// reset since epoch was read. It reports whether the entry was stored.
func (c *Cache) PutSince(epoch uint64, word string, suggestions []string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return false
	}
	if c.entries == nil {
		c.entries = make(map[string][]string)
	}
	c.entries[word] = cloneList(suggestions)
	return true
}

func (c *Cache) Epoch() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.epoch
}

// Invalidate removes the entry for word, if any.
func (c *Cache) Invalidate(word string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, word)
	c.epoch++
}

// Reset drops every entry.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]string)
	c.epoch++
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func cloneList(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
