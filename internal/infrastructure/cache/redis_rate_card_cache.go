package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	applicationbilling "github.com/kostman/backend/internal/application/billing"
	"github.com/kostman/backend/internal/domain/billing"
	"github.com/redis/go-redis/v9"
)

// RedisRateCardCache implements RateCardCache using Redis. Suitable for
// deployments where multiple instances share the resolved rate cards.
type RedisRateCardCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisRateCardCache creates a Redis-backed rate card cache and verifies
// the connection
func NewRedisRateCardCache(cfg RedisConfig) (*RedisRateCardCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisRateCardCache{
		client:    client,
		keyPrefix: "kostman:",
	}, nil
}

// NewRedisRateCardCacheWithClient creates a cache with an existing Redis
// client. Useful for testing or when sharing a client across components.
func NewRedisRateCardCacheWithClient(client *redis.Client, keyPrefix string) *RedisRateCardCache {
	if keyPrefix == "" {
		keyPrefix = "kostman:"
	}
	return &RedisRateCardCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get retrieves a cached rate card. A miss returns (nil, nil).
func (c *RedisRateCardCache) Get(ctx context.Context, key string) (*billing.RateCard, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rate card from cache: %w", err)
	}

	var card billing.RateCard
	if err := json.Unmarshal(data, &card); err != nil {
		return nil, fmt.Errorf("failed to decode cached rate card: %w", err)
	}
	return &card, nil
}

// Set stores a rate card with a TTL
func (c *RedisRateCardCache) Set(ctx context.Context, key string, card billing.RateCard, ttl time.Duration) error {
	data, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("failed to encode rate card: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache rate card: %w", err)
	}
	return nil
}

// Delete drops a cached rate card
func (c *RedisRateCardCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete cached rate card: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisRateCardCache) Close() error {
	return c.client.Close()
}

// Ensure RedisRateCardCache implements RateCardCache
var _ applicationbilling.RateCardCache = (*RedisRateCardCache)(nil)
