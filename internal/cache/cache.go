// Package cache provides the injectable refresh cache. The dashboard's
// framework-level memoization is modeled here explicitly: a (country-set,
// period) key maps to the fetched records with a short TTL.
package cache

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"tradewatch/internal/model"
)

const DefaultTTL = time.Hour

type Cache interface {
	Get(ctx context.Context, key string) ([]model.TradeRecord, bool)
	Set(ctx context.Context, key string, records []model.TradeRecord, ttl time.Duration)
}

// Key builds the canonical cache key for a country-code set and period.
// Codes are sorted so the key is insensitive to request order.
func Key(codes []string, period string) string {
	sorted := make([]string, len(codes))
	copy(sorted, codes)
	sort.Strings(sorted)
	return "trade:" + period + ":" + strings.Join(sorted, ",")
}

type memoryEntry struct {
	records   []model.TradeRecord
	expiresAt time.Time
}

// Memory is a mutex-guarded in-process cache with per-entry expiry.
type Memory struct {
	mu    sync.RWMutex
	items map[string]memoryEntry
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]memoryEntry), now: time.Now}
}

func (c *Memory) Get(ctx context.Context, key string) ([]model.TradeRecord, bool) {
	_ = ctx
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, false
	}
	records := make([]model.TradeRecord, len(entry.records))
	copy(records, entry.records)
	return records, true
}

func (c *Memory) Set(ctx context.Context, key string, records []model.TradeRecord, ttl time.Duration) {
	_ = ctx
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	stored := make([]model.TradeRecord, len(records))
	copy(stored, records)
	c.mu.Lock()
	c.items[key] = memoryEntry{records: stored, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Len reports the number of entries, expired or not.
func (c *Memory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Nop disables caching; every Get misses.
type Nop struct{}

func (Nop) Get(ctx context.Context, key string) ([]model.TradeRecord, bool) {
	_ = ctx
	_ = key
	return nil, false
}

func (Nop) Set(ctx context.Context, key string, records []model.TradeRecord, ttl time.Duration) {
	_ = ctx
	_ = key
	_ = records
	_ = ttl
}
