package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// ConnectRedis initializes the Redis connection. Redis only backs the cache,
// so a failed connection is logged and the client left nil.
func ConnectRedis(ctx context.Context, cfg *Config) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		slog.Warn("Invalid REDIS_URL, continuing without cache", slog.Any("error", err))
		return
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis connection failed, continuing without cache", slog.Any("error", err))
		_ = client.Close()
		RedisClient = nil
		return
	}

	RedisClient = client
	slog.Info("Redis connected", slog.String("addr", opts.Addr))
}

// GetRedis returns the Redis client instance
func GetRedis() *redis.Client {
	return RedisClient
}

// CloseRedis closes the client if one is connected
func CloseRedis() {
	if RedisClient != nil {
		_ = RedisClient.Close()
	}
}
