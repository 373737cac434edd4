package cache

import (
	"strings"
	"sync"
	"time"
)

// Category groups cache keys by data kind so each can carry its own TTL.
type Category string

const (
	CategoryProfile      Category = "profile"
	CategoryStats        Category = "stats"
	CategoryAchievements Category = "achievements"
	CategoryLeaderboard  Category = "leaderboard"
)

// DefaultTTLs are used for categories without an explicit override.
var DefaultTTLs = map[Category]time.Duration{
	CategoryProfile:      30 * time.Second,
	CategoryStats:        60 * time.Second,
	CategoryAchievements: 5 * time.Minute,
	CategoryLeaderboard:  2 * time.Minute,
}

const defaultTTL = time.Minute

// staleRetention is how long an expired entry is kept so it can still serve
// as a fallback when the producer fails.
const staleRetention = 24 * time.Hour

type entry struct {
	value    any
	storedAt time.Time
}

// Recorder receives cache hit/miss notifications, typically backed by
// Prometheus counters. Implementations must be safe for concurrent use.
type Recorder interface {
	CacheHit(category string)
	CacheMiss(category string)
}

// Cache is an in-memory TTL cache memoizing remote reads. It is explicitly
// constructed and injected; there is no package-level instance.
type Cache struct {
	mu       sync.RWMutex
	entries  map[string]entry
	ttls     map[Category]time.Duration
	recorder Recorder
	now      func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides the TTL for one category.
func WithTTL(category Category, ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttls[category] = ttl
	}
}

// WithRecorder attaches a hit/miss recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Cache) {
		c.recorder = r
	}
}

// WithClock replaces the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates a cache with the default category TTLs.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		ttls:    make(map[Category]time.Duration),
		now:     time.Now,
	}
	for cat, ttl := range DefaultTTLs {
		c.ttls[cat] = ttl
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) ttl(category Category) time.Duration {
	if ttl, ok := c.ttls[category]; ok {
		return ttl
	}
	return defaultTTL
}

// GetOrFetch returns the cached value for key when it is fresh and no refresh
// is forced. Otherwise it invokes producer and stores the result. When the
// producer fails, a stale cached value is returned if one exists; the error
// propagates only when there is nothing to fall back to.
func (c *Cache) GetOrFetch(key string, category Category, forceRefresh bool, producer func() (any, error)) (any, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	fresh := ok && c.now().Sub(e.storedAt) < c.ttl(category)
	if fresh && !forceRefresh {
		c.hit(category)
		return e.value, nil
	}
	c.miss(category)

	value, err := producer()
	if err != nil {
		if ok {
			// Serve stale rather than fail.
			return e.value, nil
		}
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = entry{value: value, storedAt: c.now()}
	c.mu.Unlock()

	return value, nil
}

// Invalidate removes every entry whose key contains substr. Used to blanket
// invalidate all per-user entries after a mutation.
func (c *Cache) Invalidate(substr string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.Contains(key, substr) {
			delete(c.entries, key)
		}
	}
}

// Sweep drops entries older than the stale-retention window. Expired-but-
// recent entries survive so GetOrFetch can fall back to them.
func (c *Cache) Sweep() int {
	cutoff := c.now().Add(-staleRetention)

	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key, e := range c.entries {
		if e.storedAt.Before(cutoff) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Size returns the number of entries currently held.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) hit(category Category) {
	if c.recorder != nil {
		c.recorder.CacheHit(string(category))
	}
}

func (c *Cache) miss(category Category) {
	if c.recorder != nil {
		c.recorder.CacheMiss(string(category))
	}
}
