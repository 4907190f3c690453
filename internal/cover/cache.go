package cover

import "sync"

// Cache bounds for one refresh cycle's thumbnails.
const (
	maxEntries = 8
	maxBytes   = 3 << 20
)

// Cache is an in-memory thumbnail store keyed by source URL, bounded by
// both entry count and total byte cost. Oldest entries are evicted first;
// a hit refreshes an entry's position. Both bounds hold at all times, also
// under concurrent insert.
type Cache struct {
	mu      sync.Mutex
	entries map[string][]byte
	order   []string
	total   int
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string][]byte)}
}

// Get returns the cached thumbnail for url, if present.
func (c *Cache) Get(url string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[url]
	if ok {
		c.touch(url)
	}
	return data, ok
}

// Put stores a thumbnail, evicting least-recently-used entries until both
// bounds hold. Values larger than the byte budget are not stored at all.
func (c *Cache) Put(url string, data []byte) {
	if len(data) == 0 || len(data) > maxBytes {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if old, ok := c.entries[url]; ok {
		c.total -= len(old)
		c.remove(url)
	}
	for len(c.order) >= maxEntries || c.total+len(data) > maxBytes {
		oldest := c.order[0]
		c.total -= len(c.entries[oldest])
		delete(c.entries, oldest)
		c.order = c.order[1:]
	}
	c.entries[url] = data
	c.order = append(c.order, url)
	c.total += len(data)
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]byte)
	c.order = nil
	c.total = 0
}

// Len returns the entry count.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Bytes returns the total byte cost.
func (c *Cache) Bytes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

func (c *Cache) touch(url string) {
	c.remove(url)
	c.order = append(c.order, url)
}

func (c *Cache) remove(url string) {
	for i, k := range c.order {
		if k == url {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
