package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"groovefm/config"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces the library keys inside a shared redis.
const redisKeyPrefix = "library:"

// RedisKV stores each key as a plain string value in redis.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV connects to redis and verifies the connection.
func NewRedisKV(cfg *config.Config) (*RedisKV, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisKV{client: client}, nil
}

// Close closes the redis connection.
func (kv *RedisKV) Close() error {
	return kv.client.Close()
}

// Get reads the value for key. Returns (nil, nil) when the key has never
// been written.
func (kv *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := kv.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read library key %s: %w", key, err)
	}
	return data, nil
}

// Set writes the value for key. Library keys never expire.
func (kv *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := kv.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("write library key %s: %w", key, err)
	}
	return nil
}
