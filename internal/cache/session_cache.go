package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKV stores session records in Redis under a key prefix
type RedisKV struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisKV creates a Redis key/value store. A zero ttl keeps keys forever.
func NewRedisKV(client *redis.Client, prefix string, ttl time.Duration) *RedisKV {
	if prefix == "" {
		prefix = "advent"
	}
	return &RedisKV{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *RedisKV) key(k string) string {
	return c.prefix + ":session:" + k
}

func (c *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	data, err := c.client.Get(ctx, c.key(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return data, true, nil
}

func (c *RedisKV) Set(ctx context.Context, key, value string) error {
	return c.client.Set(ctx, c.key(key), value, c.ttl).Err()
}

func (c *RedisKV) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.key(key)).Err()
}
