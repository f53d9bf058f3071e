package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"relove/internal/config"
	"relove/pkg/log"
)

var client *redis.Client

// Init initialize the Redis client
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.GetAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Info("Redis connected successfully")
	return nil
}

// Close close the Redis client
func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// GetClient get the Redis client instance
func GetClient() *redis.Client {
	return client
}
