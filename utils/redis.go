package utils

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisCtx    = context.Background()
)

// InitRedis connects the shared Redis client used for short-lived tokens
func InitRedis(addr, password string, db int) error {
	if addr == "" {
		addr = "localhost:6379"
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return redisClient.Ping(redisCtx).Err()
}

// SetToken stores a value under key with a TTL
func SetToken(key, value string, ttl time.Duration) error {
	if redisClient == nil {
		return errors.New("redis not initialized")
	}
	return redisClient.Set(redisCtx, key, value, ttl).Err()
}

// GetToken fetches a token value; returns an error when missing or expired
func GetToken(key string) (string, error) {
	if redisClient == nil {
		return "", errors.New("redis not initialized")
	}
	val, err := redisClient.Get(redisCtx, key).Result()
	if err == redis.Nil {
		return "", errors.New("token not found")
	}
	return val, err
}

// DeleteToken removes a token after use
func DeleteToken(key string) error {
	if redisClient == nil {
		return errors.New("redis not initialized")
	}
	return redisClient.Del(redisCtx, key).Err()
}
