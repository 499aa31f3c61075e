// Package cache stores aggregated search results in Redis, keyed by a
// digest of the search parameters.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ticketscan/ticketscan/internal/models"
)

// Entry is the cached portion of a search response. Sources travels with
// the offers so a cached mock result still reports degraded mode.
type Entry struct {
	Offers  []models.FlightOffer `json:"offers"`
	Sources map[string]bool      `json:"sources"`
}

type Cache interface {
	Get(ctx context.Context, params models.SearchParams) (*Entry, bool)
	Set(ctx context.Context, params models.SearchParams, entry Entry) error
	Close() error
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, params models.SearchParams) (*Entry, bool) {
	data, err := c.client.Get(ctx, cacheKey(params)).Bytes()
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	return &entry, true
}

func (c *RedisCache) Set(ctx context.Context, params models.SearchParams, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, cacheKey(params), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, params models.SearchParams) (*Entry, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, params models.SearchParams, entry Entry) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

func cacheKey(params models.SearchParams) string {
	data, _ := json.Marshal(params)
	hash := sha256.Sum256(data)
	return "offers:" + hex.EncodeToString(hash[:])
}
