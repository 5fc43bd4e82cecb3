package cache

import (
	"context"
	"sync"
	"time"

	applicationbilling "github.com/kostman/backend/internal/application/billing"
	"github.com/kostman/backend/internal/domain/billing"
)

// InMemoryRateCardCache implements RateCardCache using a process-local map.
// The default for single-instance deployments where Redis is not configured.
type InMemoryRateCardCache struct {
	mu      sync.RWMutex
	entries map[string]rateCardEntry
}

type rateCardEntry struct {
	card      billing.RateCard
	expiresAt time.Time
}

func (e rateCardEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// NewInMemoryRateCardCache creates an empty in-memory rate card cache
func NewInMemoryRateCardCache() *InMemoryRateCardCache {
	return &InMemoryRateCardCache{
		entries: make(map[string]rateCardEntry),
	}
}

// Get retrieves a cached rate card. A miss or expired entry returns (nil, nil).
func (c *InMemoryRateCardCache) Get(ctx context.Context, key string) (*billing.RateCard, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if entry.isExpired() {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, nil
	}
	card := entry.card
	return &card, nil
}

// Set stores a rate card with a TTL
func (c *InMemoryRateCardCache) Set(ctx context.Context, key string, card billing.RateCard, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = rateCardEntry{
		card:      card,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete drops a cached rate card
func (c *InMemoryRateCardCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Len returns the number of live entries, expired ones included until touched
func (c *InMemoryRateCardCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemoryRateCardCache implements RateCardCache
var _ applicationbilling.RateCardCache = (*InMemoryRateCardCache)(nil)
