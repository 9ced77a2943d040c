package app

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"travel_search/internal/adapters/observability"
	"travel_search/internal/domain"
	"travel_search/internal/mock"
)

// FailureMode is what an orchestrated search does when the upstream fails.
type FailureMode int

const (
	// Propagate surfaces the upstream error to the caller.
	Propagate FailureMode = iota
	// ReturnStale serves the last cached payload on rate-limit errors.
	ReturnStale
	// SubstituteMock masks the failure behind generated data and a success
	// status. Responses carry isSynthetic so callers can tell.
	SubstituteMock
)

// SearchEnvelope is the wire shape of flight/hotel search responses.
type SearchEnvelope struct {
	Status      bool `json:"status"`
	IsSynthetic bool `json:"isSynthetic"`
	Data        any  `json:"data"`
}

// SearchService runs the retrieval flow per request: cache check, upstream
// fetch, transform, store, and the per-endpoint failure policy.
type SearchService struct {
	sky   domain.SkyClient
	cache domain.EntryCache
	ttl   time.Duration
	gen   *mock.Generator
	now   func() time.Time

	airportOnFailure FailureMode
	flightOnFailure  FailureMode
}

func NewSearchService(sky domain.SkyClient, cache domain.EntryCache, ttl time.Duration, gen *mock.Generator) *SearchService {
	return &SearchService{
		sky:              sky,
		cache:            cache,
		ttl:              ttl,
		gen:              gen,
		now:              time.Now,
		airportOnFailure: ReturnStale,
		flightOnFailure:  SubstituteMock,
	}
}

// WithClock overrides the freshness clock; tests use it to age entries.
func (s *SearchService) WithClock(now func() time.Time) *SearchService {
	s.now = now
	return s
}

// WithFailurePolicy selects what airport and flight search do when the
// upstream fails. Defaults are ReturnStale and SubstituteMock.
func (s *SearchService) WithFailurePolicy(airport, flight FailureMode) *SearchService {
	s.airportOnFailure = airport
	s.flightOnFailure = flight
	return s
}

func airportKey(query string) string {
	return "airports:" + strings.ToLower(strings.TrimSpace(query))
}

// SearchAirports serves the transformed payload for a query. Fresh cache hits
// never touch the upstream; a stale entry is refreshed, and kept as the
// answer of last resort when the refresh dies on a rate limit.
func (s *SearchService) SearchAirports(ctx context.Context, query string) (json.RawMessage, error) {
	key := airportKey(query)

	ent, cached, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		cached = false
	}
	if cached && ent.FreshAt(s.now(), s.ttl) {
		return ent.Payload, nil
	}

	raw, err := s.sky.SearchAirports(ctx, query)
	if err != nil {
		if s.airportOnFailure == ReturnStale && cached && isRateLimited(err) {
			observability.ObserveCache("airports", "stale_hit")
			log.Warn().Str("key", key).Msg("rate limited, serving stale cache entry")
			return ent.Payload, nil
		}
		return nil, err
	}

	payload, err := json.Marshal(TransformAirports(raw))
	if err != nil {
		return nil, err
	}
	if err := s.cache.Put(ctx, key, payload); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return payload, nil
}

// SearchFlights proxies the flight search. Under the default SubstituteMock
// policy any upstream failure, including a body-level status=false, is masked
// behind generated itineraries and a success status.
func (s *SearchService) SearchFlights(ctx context.Context, req domain.FlightSearchRequest) (SearchEnvelope, error) {
	raw, err := s.sky.SearchFlights(ctx, req)
	if err != nil {
		if s.flightOnFailure != SubstituteMock {
			return SearchEnvelope{}, err
		}
		observability.ObserveSynthetic("/flights/search")
		log.Warn().Err(err).Msg("flight search failed, substituting generated itineraries")
		return SearchEnvelope{
			Status:      true,
			IsSynthetic: true,
			Data:        map[string]any{"itineraries": s.gen.Flights(req)},
		}, nil
	}
	return SearchEnvelope{Status: true, Data: raw["data"]}, nil
}

// SearchHotels always serves generated listings; there is no hotel upstream.
func (s *SearchService) SearchHotels(ctx context.Context, req domain.HotelSearchRequest) SearchEnvelope {
	observability.ObserveSynthetic("/hotels/search")
	return SearchEnvelope{
		Status:      true,
		IsSynthetic: true,
		Data:        map[string]any{"hotels": s.gen.Hotels(req)},
	}
}

func isRateLimited(err error) bool {
	return errors.Is(err, domain.ErrRateLimited)
}
