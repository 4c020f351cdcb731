package memcache_fx

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.uber.org/fx"
	"voya/internal/config"
	"voya/internal/infra"
	mem "voya/pkg/memcache"
)

var Module = fx.Provide(provideSuggestionCache, mem.NewTikTokCollection)

// provideSuggestionCache uses Redis when REDIS_URL is set and reachable,
// otherwise an in-process cache.
func provideSuggestionCache(lc fx.Lifecycle, cfg *config.Config) mem.SuggestionCache {
	if cfg.RedisURL == "" {
		return mem.NewMemorySuggestionCache(cfg.SuggestionCacheTTL)
	}

	client, err := infra.InitRedis(context.Background(), cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		log.Warnf("redis unavailable, using in-memory suggestion cache: %v", err)
		return mem.NewMemorySuggestionCache(cfg.SuggestionCacheTTL)
	}
	lc.Append(fx.Hook{OnStop: func(context.Context) error {
		return client.Close()
	}})
	return mem.NewRedisSuggestionCache(client, cfg.SuggestionCacheTTL)
}
