package main

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"travel_search/internal/adapters/observability"
	redisad "travel_search/internal/adapters/redis"
	"travel_search/internal/adapters/sky"
	"travel_search/internal/app"
	"travel_search/internal/mock"
	"travel_search/internal/shared"
)

// Pre-populates the airport-search cache for popular queries so the first
// users of the day hit warm entries instead of the upstream.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.SkyBase).
		Int("workers", cfg.Workers).
		Int("queries", len(shared.PopularQueries)).
		Msg("warmer starting")

	if cfg.CacheBackend != "redis" {
		// an in-process cache dies with this process, warming it is pointless
		log.Fatal().Msg("warmer requires CACHE_BACKEND=redis")
	}

	client, err := sky.New(cfg.SkyBase, cfg.SkyKey, cfg.SkyHost, cfg.SkyRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("sky client init failed")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	svc := app.NewSearchService(client, cache, cfg.AirportTTL, mock.New(nil, nil))

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, q := range shared.PopularQueries {
		q := q

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(query string) {
			defer wg.Done()
			defer sem.Release(1)

			if _, err := svc.SearchAirports(ctx, query); err != nil {
				log.Warn().Str("query", query).Err(err).Msg("warm failed")
				return
			}
			log.Info().Str("query", query).Msg("warm ok")
		}(q)
	}

	wg.Wait()
	log.Info().Msg("warming completed")
}
