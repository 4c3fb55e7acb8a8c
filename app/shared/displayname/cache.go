package displayname

import (
	"context"
	"errors"
	"fmt"
	"time"

	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "wordle"

// ErrNotCached is returned when no name is stored for a participant.
var ErrNotCached = errors.New("display name not cached")

func nameKey(id sharedtypes.ParticipantID) string {
	return fmt.Sprintf("%s:display_name:%s", keyPrefix, id)
}

// CacheConfig holds Redis connection and expiry settings.
type CacheConfig struct {
	URL string
	TTL time.Duration
}

// RedisCache stores resolved display names in Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(cfg CacheConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return NewRedisCacheWithClient(client, cfg.TTL), nil
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, id sharedtypes.ParticipantID) (string, error) {
	name, err := c.client.Get(ctx, nameKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotCached
		}
		return "", err
	}
	return name, nil
}

func (c *RedisCache) Set(ctx context.Context, id sharedtypes.ParticipantID, name string) error {
	return c.client.Set(ctx, nameKey(id), name, c.ttl).Err()
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
