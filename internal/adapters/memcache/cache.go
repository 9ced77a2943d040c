package memcache

import (
	"context"
	"encoding/json"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"travel_search/internal/adapters/observability"
	"travel_search/internal/domain"
)

// Cache is the per-process entry store. The LRU bound keeps memory flat under
// unbounded query churn; entries are never expired by age — the orchestrator
// judges freshness at read time so a stale entry can still serve a rate-limit
// fallback.
type Cache struct {
	lru *lru.Cache[string, domain.Entry]
	now func() time.Time
}

func New(size int) (*Cache, error) {
	if size <= 0 {
		size = 1024
	}
	l, err := lru.New[string, domain.Entry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: l, now: time.Now}, nil
}

func (c *Cache) Get(ctx context.Context, key string) (domain.Entry, bool, error) {
	e, ok := c.lru.Get(key)
	if !ok {
		observability.ObserveCache("memory", "miss")
		return domain.Entry{}, false, nil
	}
	observability.ObserveCache("memory", "hit")
	return e, true, nil
}

func (c *Cache) Put(ctx context.Context, key string, payload json.RawMessage) error {
	// copy so callers can't mutate the cached bytes afterwards
	p := make(json.RawMessage, len(payload))
	copy(p, payload)
	c.lru.Add(key, domain.Entry{Payload: p, CreatedAt: c.now()})
	observability.ObserveCache("memory", "set")
	return nil
}
