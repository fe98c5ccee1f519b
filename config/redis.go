package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

var RedisClient *redis.Client

const contentCacheTTL = 10 * time.Minute
const contentCacheKeyPrefix = "content:section:"

func InitRedis() {
	redisURL := viper.GetString("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not configured, content caching will be disabled")
		return
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Warning: failed to parse REDIS_URL: %v - content caching disabled", err)
		return
	}

	RedisClient = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := RedisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: failed to connect to Redis: %v - content caching disabled", err)
		RedisClient = nil
		return
	}

	log.Println("Connected to Redis")
}

// GetCachedContent returns the cached JSON body for a content section.
// Returns "" when the key is absent or Redis is unavailable.
func GetCachedContent(section string) string {
	if RedisClient == nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	val, err := RedisClient.Get(ctx, contentCacheKeyPrefix+section).Result()
	if err != nil {
		return ""
	}
	return val
}

// SetCachedContent stores the JSON body for a content section.
func SetCachedContent(section, body string) error {
	if RedisClient == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return RedisClient.Set(ctx, contentCacheKeyPrefix+section, body, contentCacheTTL).Err()
}

// InvalidateCachedContent drops the cache entry for a section after an upsert
// or delete so public reads never serve a stale payload past the write.
func InvalidateCachedContent(section string) error {
	if RedisClient == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return RedisClient.Del(ctx, contentCacheKeyPrefix+section).Err()
}
