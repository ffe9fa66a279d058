package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a Redis client for response caching.
// Returns nil when no address is configured or the server is unreachable;
// callers degrade by disabling caching.
func NewRedisClient(cfg *Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		log.Println("Redis not configured, response caching disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis unreachable (%v), response caching disabled", err)
		_ = client.Close()
		return nil
	}

	log.Printf("✅ Redis connected [%s]", cfg.Redis.Addr)
	return client
}
