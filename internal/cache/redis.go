package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pkordes/timetravel/internal/domain"
)

// DefaultKeyPrefix namespaces travel entries in a shared Redis.
const DefaultKeyPrefix = "travel:"

// redisEntry is the JSON value stored per key.
type redisEntry struct {
	Pgi   string `json:"pgi"`
	Place string `json:"place"`
	Date  string `json:"date"`
}

// Redis is a TravelCache backed by Redis. Keys never expire; a delete is the
// only way an entry leaves the cache.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis constructs a Redis-backed cache. An empty prefix falls back to
// DefaultKeyPrefix.
func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

func (c *Redis) key(id string) string {
	return c.prefix + id
}

// Get reads and decodes the entry for id. A missing key is a miss, not an error.
func (c *Redis) Get(ctx context.Context, id string) (domain.TravelView, bool, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.TravelView{}, false, nil
	}
	if err != nil {
		return domain.TravelView{}, false, fmt.Errorf("cache.Redis.Get: %w", err)
	}

	var e redisEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return domain.TravelView{}, false, fmt.Errorf("cache.Redis.Get: decode: %w", err)
	}
	date, err := time.Parse(domain.DateLayout, e.Date)
	if err != nil {
		return domain.TravelView{}, false, fmt.Errorf("cache.Redis.Get: decode date: %w", err)
	}
	return domain.TravelView{Code: e.Pgi, Place: e.Place, Date: date}, true, nil
}

// Set writes view as JSON under the prefixed id, without expiry.
func (c *Redis) Set(ctx context.Context, id string, view domain.TravelView) error {
	raw, err := json.Marshal(redisEntry{
		Pgi:   view.Code,
		Place: view.Place,
		Date:  view.Date.Format(domain.DateLayout),
	})
	if err != nil {
		return fmt.Errorf("cache.Redis.Set: encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key(id), raw, 0).Err(); err != nil {
		return fmt.Errorf("cache.Redis.Set: %w", err)
	}
	return nil
}

// Delete removes the entry for id. Deleting a missing key succeeds.
func (c *Redis) Delete(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("cache.Redis.Delete: %w", err)
	}
	return nil
}

// NewRedisClient parses url, applies it and verifies the server answers.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}
