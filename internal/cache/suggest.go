package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/SearchGo/internal/domain"
)

// SuggestCache is a Redis-backed cache for autocomplete results. Cache
// failures never surface to callers: a miss is returned and the resolver
// recomputes. Autocomplete must stay available when Redis is not.
type SuggestCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewSuggestCache creates a cache over the given Redis client.
func NewSuggestCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *SuggestCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SuggestCache{client: client, ttl: ttl, logger: logger}
}

// key builds the cache key. Prefixes are normalized to lowercase so case
// variants of the same prefix share an entry.
func (c *SuggestCache) key(prefix string) string {
	return fmt.Sprintf("suggest:%s", strings.ToLower(prefix))
}

// Get returns the cached suggestions for the prefix, or ok=false on a miss
// or any cache failure.
func (c *SuggestCache) Get(ctx context.Context, prefix string) ([]domain.SuggestionItem, bool) {
	data, err := c.client.Get(ctx, c.key(prefix)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("suggestion cache read failed", slog.String("error", err.Error()))
		}
		return nil, false
	}

	var items []domain.SuggestionItem
	if err := json.Unmarshal(data, &items); err != nil {
		c.logger.Warn("suggestion cache entry corrupt", slog.String("error", err.Error()))
		return nil, false
	}
	return items, true
}

// Set stores the suggestions for the prefix. Failures are logged and dropped.
func (c *SuggestCache) Set(ctx context.Context, prefix string, items []domain.SuggestionItem) {
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(prefix), data, c.ttl).Err(); err != nil {
		c.logger.Warn("suggestion cache write failed", slog.String("error", err.Error()))
	}
}

// Ping checks Redis connectivity for health reporting.
func (c *SuggestCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
