package geocode

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

type cacheEntry struct {
	Location  Location
	Timestamp time.Time
}

// Cache wraps a Geocoder with a bounded LRU cache. Only successful lookups
// are cached so a name that failed once is retried on the next request.
type Cache struct {
	inner     Geocoder
	cache     map[string]cacheEntry
	cacheList []string // most recently used first
	maxCache  int
	ttl       time.Duration
	clock     clockwork.Clock
	logger    zerolog.Logger
	mutex     sync.Mutex
}

// NewCache returns a caching decorator. A zero ttl keeps entries until they
// are evicted.
func NewCache(inner Geocoder, maxCache int, ttl time.Duration, clock clockwork.Clock, logger zerolog.Logger) *Cache {
	if maxCache <= 0 {
		maxCache = 1000
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cache{
		inner:    inner,
		cache:    make(map[string]cacheEntry),
		maxCache: maxCache,
		ttl:      ttl,
		clock:    clock,
		logger:   logger,
	}
}

func cacheKey(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

func (c *Cache) Geocode(ctx context.Context, address string) (Location, error) {
	key := cacheKey(address)
	if loc, ok := c.get(key); ok {
		return loc, nil
	}

	c.logger.Debug().Str("address", address).Msg("Geocode cache miss")
	loc, err := c.inner.Geocode(ctx, address)
	if err != nil {
		return loc, err
	}
	c.put(key, loc)
	return loc, nil
}

func (c *Cache) get(key string) (Location, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	cached, exists := c.cache[key]
	if !exists {
		return Location{}, false
	}
	age := c.clock.Since(cached.Timestamp)
	if c.ttl > 0 && age >= c.ttl {
		c.remove(key)
		return Location{}, false
	}
	c.logger.Debug().Str("address", key).Dur("age", age).Msg("Geocode cache hit")
	c.moveToFront(key)
	return cached.Location, true
}

func (c *Cache) put(key string, loc Location) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.cache[key]; exists {
		c.remove(key)
	}
	if len(c.cache) >= c.maxCache {
		c.evictOldest()
	}
	c.cache[key] = cacheEntry{Location: loc, Timestamp: c.clock.Now()}
	c.cacheList = append([]string{key}, c.cacheList...)
}

// moveToFront must be called with the mutex held.
func (c *Cache) moveToFront(key string) {
	for i, k := range c.cacheList {
		if k == key {
			c.cacheList = append(c.cacheList[:i], c.cacheList[i+1:]...)
			break
		}
	}
	c.cacheList = append([]string{key}, c.cacheList...)
}

func (c *Cache) remove(key string) {
	delete(c.cache, key)
	for i, k := range c.cacheList {
		if k == key {
			c.cacheList = append(c.cacheList[:i], c.cacheList[i+1:]...)
			return
		}
	}
}

func (c *Cache) evictOldest() {
	if len(c.cacheList) == 0 {
		return
	}
	oldest := c.cacheList[len(c.cacheList)-1]
	delete(c.cache, oldest)
	c.cacheList = c.cacheList[:len(c.cacheList)-1]
	c.logger.Debug().Str("address", oldest).Msg("Geocode cache evicted oldest entry")
}

// Stats returns the current and maximum cache size.
func (c *Cache) Stats() (int, int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.cache), c.maxCache
}
