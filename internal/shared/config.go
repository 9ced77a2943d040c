package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	MetricsAddr  string
	SkyBase      string
	SkyKey       string
	SkyHost      string
	SkyRPS       int
	CacheBackend string // memory | redis
	CacheSize    int
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	AirportTTL   time.Duration
	Workers      int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		MetricsAddr:  env("METRICS_ADDR", ":9100"),
		SkyBase:      env("SKY_BASE_URL", "https://sky-scrapper.p.rapidapi.com"),
		SkyKey:       env("RAPIDAPI_KEY", ""),
		SkyHost:      env("RAPIDAPI_HOST", "sky-scrapper.p.rapidapi.com"),
		SkyRPS:       atoi("SKY_RPS", 5),
		CacheBackend: env("CACHE_BACKEND", "memory"),
		CacheSize:    atoi("CACHE_SIZE", 1024),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		AirportTTL:   time.Duration(atoi("AIRPORT_CACHE_TTL_SECONDS", 86400)) * time.Second,
		Workers:      atoi("WARMER_WORKERS", 8),
	}
	if c.SkyKey == "" {
		log.Warn().Msg("RAPIDAPI_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
