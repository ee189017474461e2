package retrieve

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/docdex/docdex"
)

// Cache defaults.
const (
	DefaultCacheCapacity = 100
	DefaultCacheTTL      = 5 * time.Minute

	// hitWeight is how much one cache hit extends an entry's effective
	// recency when picking an eviction victim.
	hitWeight = 30 * time.Second
)

// CacheKey builds the cache key for a query: normalized query text, the
// result limit, and the job scope sorted so that scope order is irrelevant.
func CacheKey(query string, limit int, jobIDs []string) string {
	ids := append([]string(nil), jobIDs...)
	sort.Strings(ids)
	return fmt.Sprintf("%s|%d|%s", docdex.NormalizeQuery(query), limit, strings.Join(ids, ","))
}

type cacheEntry struct {
	result     *docdex.RetrievalResult
	insertedAt time.Time
	hits       int
}

// Cache is an in-memory result cache with TTL expiry on read and
// capacity eviction favoring frequently hit entries. All operations are
// atomic per key.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]*cacheEntry
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// NewCache creates a cache holding at most capacity entries, each valid
// for ttl after insertion.
func NewCache(capacity int, ttl time.Duration) *Cache {
	return &Cache{
		entries:  make(map[string]*cacheEntry),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the cached result for key and bumps its hit counter.
// Expired entries are removed on the spot and reported as misses.
func (c *Cache) Get(key string) (*docdex.RetrievalResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.insertedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	entry.hits++
	return entry.result, true
}

// Put stores a result under key. At capacity, the entry with the lowest
// insertion time plus hit bonus is evicted first, so stale but popular
// entries outlive fresh but unused ones.
func (c *Cache) Put(key string, result *docdex.RetrievalResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.capacity {
		c.evictLocked()
	}
	c.entries[key] = &cacheEntry{result: result, insertedAt: c.now()}
}

func (c *Cache) evictLocked() {
	var victim string
	var victimScore time.Time
	for key, entry := range c.entries {
		score := entry.insertedAt.Add(time.Duration(entry.hits) * hitWeight)
		if victim == "" || score.Before(victimScore) {
			victim = key
			victimScore = score
		}
	}
	if victim != "" {
		delete(c.entries, victim)
	}
}

// Clear discards all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// Stats reports occupancy and per-entry hit and age summaries.
func (c *Cache) Stats() *docdex.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := &docdex.CacheStats{
		Size:     len(c.entries),
		Capacity: c.capacity,
	}
	for key, entry := range c.entries {
		stats.Entries = append(stats.Entries, docdex.CacheEntryStats{
			Key:  key,
			Hits: entry.hits,
			Age:  c.now().Sub(entry.insertedAt),
		})
	}
	sort.Slice(stats.Entries, func(i, j int) bool {
		return stats.Entries[i].Key < stats.Entries[j].Key
	})
	return stats
}
