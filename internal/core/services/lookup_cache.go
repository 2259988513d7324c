package services

import (
	"strings"
	"sync"
	"time"
)

// DefaultLookupTTL is how long resolved account codes are served from the cache.
const DefaultLookupTTL = 5 * time.Minute

const nullKeyPart = "null"

// Clock returns the current time. Tests inject a fixed or stepping clock.
type Clock func() time.Time

type cachedCode struct {
	code  string
	found bool
}

// LookupCache memoizes account resolutions, misses included. The whole cache
// is dropped once the TTL has elapsed since the previous invalidation, so a
// rename is not visible until the next TTL boundary.
type LookupCache struct {
	mu              sync.Mutex
	ttl             time.Duration
	now             Clock
	entries         map[string]cachedCode
	lastInvalidated time.Time
}

// NewLookupCache creates a cache. A nil clock uses time.Now.
func NewLookupCache(ttl time.Duration, now Clock) *LookupCache {
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = DefaultLookupTTL
	}
	return &LookupCache{
		ttl:             ttl,
		now:             now,
		entries:         make(map[string]cachedCode),
		lastInvalidated: now(),
	}
}

// Get returns the cached resolution for key. hit is false when the key is not cached.
func (c *LookupCache) Get(key string) (code string, found bool, hit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expireLocked()
	e, ok := c.entries[key]
	if !ok {
		return "", false, false
	}
	return e.code, e.found, true
}

// Set stores a resolution. A miss is stored with found=false.
func (c *LookupCache) Set(key string, code string, found bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expireLocked()
	c.entries[key] = cachedCode{code: code, found: found}
}

// Invalidate drops every entry and restarts the TTL window.
func (c *LookupCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidateLocked()
}

// Len returns the number of cached entries.
func (c *LookupCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *LookupCache) expireLocked() {
	if c.now().Sub(c.lastInvalidated) >= c.ttl {
		c.invalidateLocked()
	}
}

func (c *LookupCache) invalidateLocked() {
	clear(c.entries)
	c.lastInvalidated = c.now()
}

// CategoryCacheKey builds the key of a name lookup: tenant:category:subcategory|null.
func CategoryCacheKey(tenantID, categoryName string, subcategoryName *string) string {
	return cacheKey("", tenantID, categoryName, subcategoryName)
}

// LegacyCacheKey builds the key of a legacy-ID lookup.
func LegacyCacheKey(tenantID, categoryID string, subcategoryID *string) string {
	return cacheKey("legacy:", tenantID, categoryID, subcategoryID)
}

func cacheKey(prefix, tenantID, primary string, secondary *string) string {
	sub := nullKeyPart
	if secondary != nil {
		sub = *secondary
	}
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(tenantID)
	b.WriteByte(':')
	b.WriteString(primary)
	b.WriteByte(':')
	b.WriteString(sub)
	return b.String()
}
