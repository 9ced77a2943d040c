package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"travel_search/internal/app"
	"travel_search/internal/domain"
	"travel_search/internal/mock"
)

// ---- fakes ----

type fakeSky struct {
	airports    map[string]any
	airportsErr error
	flights     map[string]any
	flightsErr  error
	calls       int
}

func (f *fakeSky) SearchAirports(ctx context.Context, query string) (map[string]any, error) {
	f.calls++
	if f.airportsErr != nil {
		return nil, f.airportsErr
	}
	return f.airports, nil
}

func (f *fakeSky) SearchFlights(ctx context.Context, req domain.FlightSearchRequest) (map[string]any, error) {
	f.calls++
	if f.flightsErr != nil {
		return nil, f.flightsErr
	}
	return f.flights, nil
}

type fakeCache struct {
	store map[string]domain.Entry
	now   func() time.Time
}

func (c *fakeCache) Get(ctx context.Context, key string) (domain.Entry, bool, error) {
	e, ok := c.store[key]
	return e, ok, nil
}

func (c *fakeCache) Put(ctx context.Context, key string, payload json.RawMessage) error {
	if c.store == nil {
		c.store = map[string]domain.Entry{}
	}
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	c.store[key] = domain.Entry{Payload: append(json.RawMessage(nil), payload...), CreatedAt: now()}
	return nil
}

func rawAirports() map[string]any {
	return map[string]any{
		"status": true,
		"data": []any{
			map[string]any{
				"skyId":    "NYCA",
				"entityId": "27537542",
				"presentation": map[string]any{
					"title":           "New York",
					"subtitle":        "United States",
					"suggestionTitle": "New York (Any)",
				},
			},
		},
	}
}

func newService(sky *fakeSky, cache *fakeCache, ttl time.Duration) *app.SearchService {
	gen := mock.New(rand.NewSource(1), nil)
	return app.NewSearchService(sky, cache, ttl, gen)
}

// ---- airport search ----

func TestSearchAirports_FreshHitSkipsUpstream(t *testing.T) {
	sky := &fakeSky{airports: rawAirports()}
	cache := &fakeCache{}
	s := newService(sky, cache, 24*time.Hour)

	first, err := s.SearchAirports(context.Background(), "New York")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if sky.calls != 1 {
		t.Fatalf("expected one upstream call, got %d", sky.calls)
	}

	second, err := s.SearchAirports(context.Background(), "New York")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if sky.calls != 1 {
		t.Fatalf("fresh hit must not call upstream, got %d calls", sky.calls)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("cached payload must be byte-identical\nfirst:  %s\nsecond: %s", first, second)
	}
}

func TestSearchAirports_KeyNormalization(t *testing.T) {
	sky := &fakeSky{airports: rawAirports()}
	cache := &fakeCache{}
	s := newService(sky, cache, 24*time.Hour)

	_, _ = s.SearchAirports(context.Background(), "  London ")
	_, _ = s.SearchAirports(context.Background(), "london")
	if sky.calls != 1 {
		t.Fatalf("equivalent queries must share a cache key, got %d upstream calls", sky.calls)
	}
}

func TestSearchAirports_StaleEntryRefetched(t *testing.T) {
	sky := &fakeSky{airports: rawAirports()}
	cache := &fakeCache{}
	s := newService(sky, cache, 24*time.Hour)

	if _, err := s.SearchAirports(context.Background(), "paris"); err != nil {
		t.Fatalf("err: %v", err)
	}
	created := cache.store["airports:paris"].CreatedAt

	// jump past the freshness window
	s.WithClock(func() time.Time { return time.Now().Add(25 * time.Hour) })
	cache.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

	if _, err := s.SearchAirports(context.Background(), "paris"); err != nil {
		t.Fatalf("err: %v", err)
	}
	if sky.calls != 2 {
		t.Fatalf("stale entry must trigger a refetch, got %d calls", sky.calls)
	}
	if !cache.store["airports:paris"].CreatedAt.After(created) {
		t.Fatalf("refetch must reset the entry timestamp")
	}
}

func TestSearchAirports_RateLimitedServesStale(t *testing.T) {
	sky := &fakeSky{airports: rawAirports()}
	cache := &fakeCache{}
	s := newService(sky, cache, time.Nanosecond) // everything is instantly stale

	first, err := s.SearchAirports(context.Background(), "rome")
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	sky.airportsErr = fmt.Errorf("searchAirport: %w", domain.ErrRateLimited)
	got, err := s.SearchAirports(context.Background(), "rome")
	if err != nil {
		t.Fatalf("expected stale fallback, got err: %v", err)
	}
	if !bytes.Equal(first, got) {
		t.Fatalf("stale fallback must return the cached payload")
	}
}

func TestSearchAirports_RateLimitedNoCachePropagates(t *testing.T) {
	sky := &fakeSky{airportsErr: fmt.Errorf("searchAirport: %w", domain.ErrRateLimited)}
	s := newService(sky, &fakeCache{}, 24*time.Hour)

	_, err := s.SearchAirports(context.Background(), "berlin")
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected rate-limit error with empty cache, got %v", err)
	}
}

func TestSearchAirports_OtherErrorPropagatesDespiteCache(t *testing.T) {
	sky := &fakeSky{airports: rawAirports()}
	cache := &fakeCache{}
	s := newService(sky, cache, time.Nanosecond)

	if _, err := s.SearchAirports(context.Background(), "oslo"); err != nil {
		t.Fatalf("err: %v", err)
	}

	sky.airportsErr = errors.New("boom")
	if _, err := s.SearchAirports(context.Background(), "oslo"); err == nil {
		t.Fatalf("non-rate-limit failure must propagate even with a stale entry")
	}
}

// ---- flight search ----

func TestSearchFlights_Passthrough(t *testing.T) {
	sky := &fakeSky{flights: map[string]any{
		"status": true,
		"data":   map[string]any{"itineraries": []any{map[string]any{"id": "real-1"}}},
	}}
	s := newService(sky, &fakeCache{}, 24*time.Hour)

	env, err := s.SearchFlights(context.Background(), domain.FlightSearchRequest{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !env.Status || env.IsSynthetic {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	data := env.Data.(map[string]any)
	if len(data["itineraries"].([]any)) != 1 {
		t.Fatalf("upstream data must pass through: %+v", data)
	}
}

func TestSearchFlights_FailureSubstitutesMock(t *testing.T) {
	sky := &fakeSky{flightsErr: errors.New("transport down")}
	s := newService(sky, &fakeCache{}, 24*time.Hour)

	env, err := s.SearchFlights(context.Background(), domain.FlightSearchRequest{
		OriginSkyID:      "NYC",
		DestinationSkyID: "LON",
		Date:             "2025-06-01",
	})
	if err != nil {
		t.Fatalf("failure must be masked, got err: %v", err)
	}
	if !env.Status || !env.IsSynthetic {
		t.Fatalf("expected synthetic success envelope: %+v", env)
	}
	its := env.Data.(map[string]any)["itineraries"].([]mock.Itinerary)
	if len(its) != 8 {
		t.Fatalf("expected 8 generated itineraries, got %d", len(its))
	}
}

func TestSearchFlights_FalseStatusSubstitutesMock(t *testing.T) {
	sky := &fakeSky{flightsErr: domain.ErrUpstreamStatus}
	s := newService(sky, &fakeCache{}, 24*time.Hour)

	env, err := s.SearchFlights(context.Background(), domain.FlightSearchRequest{})
	if err != nil || !env.IsSynthetic {
		t.Fatalf("status=false must be masked, err=%v env=%+v", err, env)
	}
}

func TestSearchFlights_PropagatePolicy(t *testing.T) {
	sky := &fakeSky{flightsErr: errors.New("down")}
	s := newService(sky, &fakeCache{}, 24*time.Hour).
		WithFailurePolicy(app.ReturnStale, app.Propagate)

	if _, err := s.SearchFlights(context.Background(), domain.FlightSearchRequest{}); err == nil {
		t.Fatalf("propagate policy must surface the error")
	}
}

// ---- hotel search ----

func TestSearchHotels_AlwaysSynthetic(t *testing.T) {
	s := newService(&fakeSky{}, &fakeCache{}, 24*time.Hour)

	env := s.SearchHotels(context.Background(), domain.HotelSearchRequest{EntityID: "1"})
	if !env.Status || !env.IsSynthetic {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	hotels := env.Data.(map[string]any)["hotels"].([]mock.Hotel)
	if len(hotels) != 8 {
		t.Fatalf("expected 8 generated hotels, got %d", len(hotels))
	}
}

// ---- transformer ----

func TestTransformAirports_Projection(t *testing.T) {
	out := app.TransformAirports(rawAirports())

	if st, _ := out["status"].(bool); !st {
		t.Fatalf("top-level fields must pass through: %+v", out)
	}
	list := out["data"].([]domain.Airport)
	if len(list) != 1 {
		t.Fatalf("expected 1 airport, got %d", len(list))
	}
	a := list[0]
	if a.SkyID != "NYCA" || a.EntityID != "27537542" || a.Title != "New York" ||
		a.Subtitle != "United States" || a.SuggestionTitle != "New York (Any)" {
		t.Fatalf("unexpected projection: %+v", a)
	}
}

func TestTransformAirports_TitleFallsBackToNavigation(t *testing.T) {
	raw := map[string]any{"data": []any{
		map[string]any{
			"skyId":      "LOND",
			"entityId":   "27544008",
			"navigation": map[string]any{"localizedName": "Londres"},
		},
	}}
	out := app.TransformAirports(raw)
	if got := out["data"].([]domain.Airport)[0].Title; got != "Londres" {
		t.Fatalf("expected navigation fallback, got %q", got)
	}
}

func TestTransformAirports_NoDataList(t *testing.T) {
	out := app.TransformAirports(map[string]any{"status": true})
	if got := out["data"].([]domain.Airport); len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}

func TestTransformAirports_Idempotent(t *testing.T) {
	raw := rawAirports()
	a := app.TransformAirports(raw)
	b := app.TransformAirports(raw)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("transform must be pure:\n%+v\n%+v", a, b)
	}
}
