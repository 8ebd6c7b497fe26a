package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
	ctx    context.Context
	ttl    time.Duration
}

// NewRedisCache connects lazily to addr; entries expire after ttl (0 keeps them).
func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: rdb,
		ctx:    context.Background(),
		ttl:    ttl,
	}
}

func (r *RedisCache) Ping() error {
	return errors.Wrap(r.client.Ping(r.ctx).Err(), "redis ping")
}

func (r *RedisCache) Get(key string) (string, bool, error) {
	val, err := r.client.Get(r.ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "redis get %s", key)
	}
	return val, true, nil
}

func (r *RedisCache) Set(key string, value string) error {
	return errors.Wrapf(r.client.Set(r.ctx, key, value, r.ttl).Err(), "redis set %s", key)
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
