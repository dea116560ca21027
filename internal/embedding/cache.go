package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores embedding vectors keyed by content hash. Writes are
// idempotent (same key always maps to the same vector), so implementations
// do not need to coordinate beyond basic thread safety.
type Cache interface {
	Get(ctx context.Context, key string) ([]float64, bool)
	Set(ctx context.Context, key string, vec []float64)
}

// CacheKey builds a deterministic key from the model and input text.
func CacheKey(model, text string) string {
	hash := sha256.Sum256([]byte(model + "|" + text))
	return fmt.Sprintf("emb:%x", hash[:16])
}

type memoryEntry struct {
	vec       []float64
	expiresAt time.Time
	storedAt  time.Time
}

// MemoryCache is a bounded in-memory cache with TTL and oldest-first
// eviction once maxEntries is exceeded.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]*memoryEntry
	maxEntries int
	ttl        time.Duration
}

// NewMemoryCache creates a MemoryCache. maxEntries <= 0 or ttl <= 0 fall
// back to sane bounds; the cache is never unbounded.
func NewMemoryCache(maxEntries int, ttl time.Duration) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MemoryCache{
		entries:    make(map[string]*memoryEntry),
		maxEntries: maxEntries,
		ttl:        ttl,
	}
}

// Get returns the cached vector for key, if present and unexpired.
func (c *MemoryCache) Get(_ context.Context, key string) ([]float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.vec, true
}

// Set stores a vector, evicting the oldest entries when over capacity.
func (c *MemoryCache) Set(_ context.Context, key string, vec []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	c.entries[key] = &memoryEntry{vec: vec, expiresAt: now.Add(c.ttl), storedAt: now}

	for len(c.entries) > c.maxEntries {
		oldestKey := ""
		var oldestAt time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.storedAt.Before(oldestAt) {
				oldestKey = k
				oldestAt = e.storedAt
			}
		}
		delete(c.entries, oldestKey)
	}
}

// Len returns the number of live entries.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// TieredCache layers an in-memory L1 over a Redis L2. L1 misses consult
// Redis and repopulate L1; Redis being unreachable degrades to L1-only.
type TieredCache struct {
	l1  *MemoryCache
	rdb *redis.Client
	ttl time.Duration
}

// NewTieredCache connects to redisURL and wraps l1. An invalid or
// unreachable Redis disables the L2 tier rather than failing.
func NewTieredCache(l1 *MemoryCache, redisURL string, ttl time.Duration) *TieredCache {
	tc := &TieredCache{l1: l1, ttl: ttl}
	if redisURL == "" {
		return tc
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return tc
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return tc
	}

	tc.rdb = rdb
	return tc
}

// Get consults L1, then Redis. A Redis hit repopulates L1.
func (c *TieredCache) Get(ctx context.Context, key string) ([]float64, bool) {
	if vec, ok := c.l1.Get(ctx, key); ok {
		return vec, true
	}
	if c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var vec []float64
	if err := json.Unmarshal(raw, &vec); err != nil {
		return nil, false
	}
	c.l1.Set(ctx, key, vec)
	return vec, true
}

// Set writes to both tiers; Redis errors are ignored.
func (c *TieredCache) Set(ctx context.Context, key string, vec []float64) {
	c.l1.Set(ctx, key, vec)
	if c.rdb == nil {
		return
	}
	if raw, err := json.Marshal(vec); err == nil {
		_ = c.rdb.Set(ctx, key, raw, c.ttl).Err()
	}
}
