package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"filmorate-go/internal/models"
	"filmorate-go/internal/services"
)

const (
	popularKeyPrefix = "popular:"
	generationKey    = "popular:gen"
)

// redisPopularCache is the services.PopularCache implementation backed by
// Redis. Entries are keyed by a generation counter plus the requested
// count; invalidation bumps the generation so every cached list goes
// stale at once, and the TTL reaps the orphaned keys.
type redisPopularCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPopularCache creates a popular-films cache on the given client.
func NewRedisPopularCache(client *redis.Client, ttl time.Duration) services.PopularCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &redisPopularCache{client: client, ttl: ttl}
}

// Get returns the cached ranking for count, or (nil, nil) on a miss.
func (c *redisPopularCache) Get(ctx context.Context, count int) ([]models.Film, error) {
	key, err := c.entryKey(ctx, count)
	if err != nil {
		return nil, err
	}
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading popular cache key %s: %w", key, err)
	}
	var films []models.Film
	if err := json.Unmarshal([]byte(val), &films); err != nil {
		// Treat a corrupt entry as a miss; it will be overwritten.
		return nil, nil
	}
	return films, nil
}

// Put stores the ranking for count under the current generation.
func (c *redisPopularCache) Put(ctx context.Context, count int, films []models.Film) error {
	key, err := c.entryKey(ctx, count)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(films)
	if err != nil {
		return fmt.Errorf("marshalling popular films: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing popular cache key %s: %w", key, err)
	}
	return nil
}

// Invalidate bumps the generation counter, orphaning all cached entries.
func (c *redisPopularCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("bumping popular cache generation: %w", err)
	}
	return nil
}

func (c *redisPopularCache) entryKey(ctx context.Context, count int) (string, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err == redis.Nil {
		gen = 0
	} else if err != nil {
		return "", fmt.Errorf("reading popular cache generation: %w", err)
	}
	return fmt.Sprintf("%sv%d:count:%d", popularKeyPrefix, gen, count), nil
}
