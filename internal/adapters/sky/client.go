package sky

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"travel_search/internal/adapters/observability"
	"travel_search/internal/domain"
)

// Client calls the sky-scrapper RapidAPI. Every request carries the
// X-RapidAPI-Key/Host headers; 429 and transient 5xx are retried with
// backoff, honoring Retry-After when the server sends one.
type Client struct {
	base string
	hc   *http.Client
	key  string
	host string
	rl   *rate.Limiter
}

func New(base, key, host string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		host: host,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

func (c *Client) SearchAirports(ctx context.Context, query string) (map[string]any, error) {
	u := fmt.Sprintf("%s/api/v1/flights/searchAirport?query=%s&locale=es-ES",
		c.base, url.QueryEscape(query))
	var out map[string]any
	return out, c.get(ctx, "searchAirport", u, &out)
}

func (c *Client) SearchFlights(ctx context.Context, req domain.FlightSearchRequest) (map[string]any, error) {
	p := url.Values{}
	p.Set("originSkyId", req.OriginSkyID)
	p.Set("destinationSkyId", req.DestinationSkyID)
	p.Set("originEntityId", req.OriginEntityID)
	p.Set("destinationEntityId", req.DestinationEntityID)
	cabin := req.CabinClass
	if cabin == "" {
		cabin = "economy"
	}
	p.Set("cabinClass", cabin)
	p.Set("adults", strconv.Itoa(req.Adults))
	p.Set("sortBy", "best")
	p.Set("currency", "USD")
	p.Set("market", "es-ES")
	p.Set("countryCode", "US")
	if req.Children > 0 {
		p.Set("children", strconv.Itoa(req.Children))
	}
	if req.Infants > 0 {
		p.Set("infants", strconv.Itoa(req.Infants))
	}
	if req.Date != "" {
		p.Set("date", req.Date)
	}
	if req.ReturnDate != "" && req.TripType == "roundtrip" {
		p.Set("returnDate", req.ReturnDate)
	}
	u := c.base + "/api/v2/flights/searchFlightsComplete?" + p.Encode()

	var out map[string]any
	if err := c.get(ctx, "searchFlightsComplete", u, &out); err != nil {
		return nil, err
	}
	if ok, _ := out["status"].(bool); !ok {
		return nil, domain.ErrUpstreamStatus
	}
	return out, nil
}

// get performs a GET with client-side rate limiting, retries, and JSON decode
// into out. A 429 that survives all retries comes back as ErrRateLimited so
// callers can decide whether a stale answer is acceptable.
func (c *Client) get(ctx context.Context, endpoint, url string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 3; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("X-RapidAPI-Key", c.key)
		req.Header.Set("X-RapidAPI-Host", c.host)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "travel-search/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			observability.ObserveExternal("sky", endpoint, 0, time.Since(start))
			lastErr = err
			if i < 2 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("sky", endpoint, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusTooManyRequests:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("%s: %w", endpoint, domain.ErrRateLimited)
			if i < 2 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		case http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 2 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			// read a small error body for diagnostics
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential delay (100ms, 200ms, 400ms...) with up to
// +50% jitter from crypto/rand to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 100 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
