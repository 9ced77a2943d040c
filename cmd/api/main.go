package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	server "travel_search/internal/adapters/http_server"
	"travel_search/internal/adapters/memcache"
	"travel_search/internal/adapters/observability"
	redisad "travel_search/internal/adapters/redis"
	"travel_search/internal/adapters/sky"
	"travel_search/internal/app"
	"travel_search/internal/domain"
	"travel_search/internal/mock"
	"travel_search/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// deps
	client, err := sky.New(cfg.SkyBase, cfg.SkyKey, cfg.SkyHost, cfg.SkyRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("sky client init failed")
	}

	var cache domain.EntryCache
	switch cfg.CacheBackend {
	case "redis":
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		log.Info().Str("addr", cfg.RedisAddr).Msg("using shared redis cache")
	default:
		mc, err := memcache.New(cfg.CacheSize)
		if err != nil {
			log.Fatal().Err(err).Msg("memory cache init failed")
		}
		cache = mc
		// per-process cache: instances do not share entries
		log.Info().Int("size", cfg.CacheSize).Msg("using in-process cache")
	}

	gen := mock.New(nil, nil)
	svc := app.NewSearchService(client, cache, cfg.AirportTTL, gen)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(server.NewHandlers(svc))

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
