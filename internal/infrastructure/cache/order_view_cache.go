package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	appordering "github.com/pyasti/backend/internal/application/ordering"
	"github.com/pyasti/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

const (
	orderViewKeyPrefix = "order:view:"
	orderViewTTL       = 15 * time.Minute
)

// RedisOrderViewCache implements the order-view cache on Redis.
// Entries expire on their own; lifecycle transitions delete them early.
type RedisOrderViewCache struct {
	client *redis.Client
}

// NewRedisOrderViewCache creates a cache backed by a new Redis connection
func NewRedisOrderViewCache(cfg config.RedisConfig) (*RedisOrderViewCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisOrderViewCache{client: client}, nil
}

// NewRedisOrderViewCacheWithClient creates a cache sharing an existing client
func NewRedisOrderViewCacheWithClient(client *redis.Client) *RedisOrderViewCache {
	return &RedisOrderViewCache{client: client}
}

// Get returns the cached view, or nil on a miss
func (c *RedisOrderViewCache) Get(ctx context.Context, orderID uuid.UUID) (*appordering.OrderDTO, error) {
	payload, err := c.client.Get(ctx, orderViewKeyPrefix+orderID.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read order view: %w", err)
	}

	var dto appordering.OrderDTO
	if err := json.Unmarshal(payload, &dto); err != nil {
		// A corrupt entry behaves like a miss
		return nil, nil
	}
	return &dto, nil
}

// Set stores the rendered view with a TTL
func (c *RedisOrderViewCache) Set(ctx context.Context, dto *appordering.OrderDTO) error {
	payload, err := json.Marshal(dto)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, orderViewKeyPrefix+dto.ID, payload, orderViewTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache order view: %w", err)
	}
	return nil
}

// Invalidate drops the cached view for an order
func (c *RedisOrderViewCache) Invalidate(ctx context.Context, orderID uuid.UUID) error {
	if err := c.client.Del(ctx, orderViewKeyPrefix+orderID.String()).Err(); err != nil {
		return fmt.Errorf("failed to invalidate order view: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisOrderViewCache) Close() error {
	return c.client.Close()
}

// Ensure RedisOrderViewCache implements the application port
var _ appordering.OrderViewCache = (*RedisOrderViewCache)(nil)
