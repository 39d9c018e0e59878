package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"polyglot-blog-be/config"
)

// Cache TTL constants
const (
	CacheTTLPostList     = 5 * time.Minute
	CacheTTLCategoryList = 1 * time.Hour
)

// ErrCacheUnavailable is returned when Redis is not connected
var ErrCacheUnavailable = errors.New("redis not available")

// IsRedisAvailable checks if Redis client is connected
func IsRedisAvailable() bool {
	return config.GetRedis() != nil
}

// CacheGet retrieves cached data and unmarshals it into dest
func CacheGet(ctx context.Context, key string, dest any) error {
	client := config.GetRedis()
	if client == nil {
		return ErrCacheUnavailable
	}

	val, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(val, dest)
}

// CacheSet stores data in cache with TTL
func CacheSet(ctx context.Context, key string, value any, ttl time.Duration) error {
	client := config.GetRedis()
	if client == nil {
		return ErrCacheUnavailable
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	return client.Set(ctx, key, data, ttl).Err()
}

// CacheDelete removes cache keys
func CacheDelete(ctx context.Context, keys ...string) error {
	client := config.GetRedis()
	if client == nil || len(keys) == 0 {
		return nil
	}
	return client.Del(ctx, keys...).Err()
}

// CacheDeletePattern removes all keys matching pattern (e.g., "posts:list:*")
func CacheDeletePattern(ctx context.Context, pattern string) error {
	client := config.GetRedis()
	if client == nil {
		return nil
	}

	var keys []string
	iter := client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) > 0 {
		return client.Del(ctx, keys...).Err()
	}
	return nil
}

// BuildCacheKey builds a cache key from parts
func BuildCacheKey(parts ...any) string {
	s := make([]string, len(parts))
	for i, part := range parts {
		s[i] = fmt.Sprint(part)
	}
	return strings.Join(s, ":")
}
