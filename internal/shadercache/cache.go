// Package shadercache memoizes WGSL compilation results keyed by source.
//
// Test suites create many contexts and link the same few programs in each.
// The cache keeps compiled SPIR-V words, and compile errors, so each source
// is compiled once per process.
//
// Cache is safe for concurrent use and must not be copied after creation.
package shadercache

import "sync"

// CompileFunc compiles one WGSL source to SPIR-V words.
type CompileFunc func(src string) ([]uint32, error)

// Cache is a least-recently-used cache of compile results with a soft
// limit. When the limit is exceeded the oldest quarter of the entries is
// evicted.
type Cache struct {
	mu      sync.Mutex
	compile CompileFunc
	entries map[string]*entry
	limit   int
	tick    int64
	stats   Stats
}

type entry struct {
	words []uint32
	err   error
	atime int64
}

// Stats counts lookups.
type Stats struct {
	Hits, Misses, Evictions int
}

// New returns a cache holding up to limit sources. A limit of 0 means
// unlimited.
func New(limit int, compile CompileFunc) *Cache {
	return &Cache{
		compile: compile,
		entries: make(map[string]*entry),
		limit:   limit,
	}
}

// Compile returns the cached result for src, compiling it on a miss. The
// returned words are shared and must not be modified.
func (c *Cache) Compile(src string) ([]uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	if e, ok := c.entries[src]; ok {
		e.atime = c.tick
		c.stats.Hits++
		return e.words, e.err
	}
	c.stats.Misses++
	words, err := c.compile(src)
	c.entries[src] = &entry{words: words, err: err, atime: c.tick}
	if c.limit > 0 && len(c.entries) > c.limit {
		c.evictOldest()
	}
	return words, err
}

// Len returns the number of cached sources.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the lookup counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Clear drops every entry and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	c.stats = Stats{}
}

// evictOldest removes the least recently used quarter of the entries, at
// least one. Caller holds mu.
func (c *Cache) evictOldest() {
	n := max(len(c.entries)/4, 1)
	for range n {
		var oldest string
		first := true
		var oldestTime int64
		for k, e := range c.entries {
			if first || e.atime < oldestTime {
				oldest, oldestTime, first = k, e.atime, false
			}
		}
		delete(c.entries, oldest)
		c.stats.Evictions++
	}
}
