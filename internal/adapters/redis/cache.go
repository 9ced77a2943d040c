package redisad

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"travel_search/internal/adapters/observability"
	"travel_search/internal/domain"
)

// Cache stores entries in redis so multiple instances share one view of the
// search cache. Entries are written without a redis TTL: staleness is judged
// by the orchestrator, and an aged entry must survive to back the rate-limit
// fallback.
type Cache struct{ c *redis.Client }

func New(addr, pass string, db int) *Cache {
	return &Cache{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (r *Cache) Get(ctx context.Context, key string) (domain.Entry, bool, error) {
	v, err := r.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		observability.ObserveCache("redis", "miss")
		return domain.Entry{}, false, nil
	}
	if err != nil {
		return domain.Entry{}, false, err
	}
	var e domain.Entry
	if err := json.Unmarshal(v, &e); err != nil {
		return domain.Entry{}, false, err
	}
	observability.ObserveCache("redis", "hit")
	return e, true, nil
}

func (r *Cache) Put(ctx context.Context, key string, payload json.RawMessage) error {
	b, err := json.Marshal(domain.Entry{Payload: payload, CreatedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	observability.ObserveCache("redis", "set")
	return r.c.Set(ctx, key, b, 0).Err()
}
