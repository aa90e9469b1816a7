package app

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a Redis client with per-call timeouts and
// validates connectivity before handing it out.
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  cfg.RedisTimeout,
		ReadTimeout:  cfg.RedisTimeout,
		WriteTimeout: cfg.RedisTimeout,
	})

	if err := PingRedis(ctx, client, cfg.RedisTimeout); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}

// PingRedis checks the server responds within timeout.
func PingRedis(parent context.Context, client *redis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	return client.Ping(ctx).Err()
}
