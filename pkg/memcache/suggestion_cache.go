package mem

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"voya/internal/models/response_models"
)

// SuggestionCache memoises location suggestions per normalised query. A
// cache failure is reported as a miss.
type SuggestionCache interface {
	Get(ctx context.Context, query string) ([]response_models.Suggestion, bool)
	Set(ctx context.Context, query string, suggestions []response_models.Suggestion)
	Backend() string
}

func cacheKey(query string) string {
	return "places:autocomplete:" + strings.ToLower(strings.TrimSpace(query))
}

type memorySuggestionCache struct {
	store *TTLStore[[]response_models.Suggestion]
}

func NewMemorySuggestionCache(ttl time.Duration) SuggestionCache {
	return &memorySuggestionCache{store: NewTTLStore[[]response_models.Suggestion](ttl)}
}

func (m *memorySuggestionCache) Get(_ context.Context, query string) ([]response_models.Suggestion, bool) {
	return m.store.Peek(cacheKey(query))
}

func (m *memorySuggestionCache) Set(_ context.Context, query string, suggestions []response_models.Suggestion) {
	m.store.Set(cacheKey(query), suggestions)
}

func (m *memorySuggestionCache) Backend() string {
	return "memory"
}

type redisSuggestionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSuggestionCache(client *redis.Client, ttl time.Duration) SuggestionCache {
	return &redisSuggestionCache{client: client, ttl: ttl}
}

func (r *redisSuggestionCache) Get(ctx context.Context, query string) ([]response_models.Suggestion, bool) {
	raw, err := r.client.Get(ctx, cacheKey(query)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warnf("suggestion cache read failed: %v", err)
		}
		return nil, false
	}

	var suggestions []response_models.Suggestion
	if err := json.Unmarshal(raw, &suggestions); err != nil {
		log.Warnf("suggestion cache entry is corrupt: %v", err)
		return nil, false
	}
	return suggestions, true
}

func (r *redisSuggestionCache) Set(ctx context.Context, query string, suggestions []response_models.Suggestion) {
	raw, err := json.Marshal(suggestions)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, cacheKey(query), raw, r.ttl).Err(); err != nil {
		log.Warnf("suggestion cache write failed: %v", err)
	}
}

func (r *redisSuggestionCache) Backend() string {
	return "redis"
}
