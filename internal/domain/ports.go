package domain

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	// ErrRateLimited marks an upstream 429 after retries were exhausted.
	// The orchestrator may answer it with a stale cache entry.
	ErrRateLimited = errors.New("upstream rate limited")

	// ErrUpstreamStatus marks a 200 response whose body reports status=false.
	ErrUpstreamStatus = errors.New("upstream reported failure status")
)

// SkyClient talks to the flight-data API.
type SkyClient interface {
	SearchAirports(ctx context.Context, query string) (map[string]any, error)
	SearchFlights(ctx context.Context, req FlightSearchRequest) (map[string]any, error)
}

// Entry is one cached transformed response. Freshness is decided by the
// reader against CreatedAt; entries are never expired on write.
type Entry struct {
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"createdAt"`
}

// FreshAt reports whether the entry is still within ttl at the given instant.
func (e Entry) FreshAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.CreatedAt) < ttl
}

// EntryCache stores the last transformed response per query key. Get returns
// the entry even when stale; deciding what a stale entry is worth is the
// caller's job.
type EntryCache interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Put(ctx context.Context, key string, payload json.RawMessage) error
}
