package spin

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// cachedAccountEntry wraps an account with version metadata for cache invalidation
type cachedAccountEntry struct {
	Version  string              `json:"version"`
	Account  *domain.SpinAccount `json:"account"`
	CachedAt time.Time           `json:"cached_at"`
}

// accountCache provides an in-memory LRU cache for account snapshot reads
// with time-based expiration. Only display reads go through it; the mutating
// spin path always hits storage under the account lock.
type accountCache struct {
	lru *expirable.LRU[string, *cachedAccountEntry]
}

// newAccountCache creates a new account cache with the specified size and TTL.
func newAccountCache(size int, ttl time.Duration) *accountCache {
	return &accountCache{
		lru: expirable.NewLRU[string, *cachedAccountEntry](size, nil, ttl),
	}
}

// Get retrieves an account from the cache.
// Returns (nil, false) if not in cache, expired, or version mismatch.
func (c *accountCache) Get(userID string) (*domain.SpinAccount, bool) {
	entry, found := c.lru.Get(userID)
	if !found {
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(userID)
		return nil, false
	}

	return entry.Account, true
}

// Set stores an account in the cache with current schema version.
func (c *accountCache) Set(userID string, account *domain.SpinAccount) {
	c.lru.Add(userID, &cachedAccountEntry{
		Version:  CacheSchemaVersion,
		Account:  account,
		CachedAt: time.Now(),
	})
}

// Invalidate removes an account from the cache after any counter mutation.
func (c *accountCache) Invalidate(userID string) {
	c.lru.Remove(userID)
}
