package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/TheCosmicVibe/Tallie-App/utils"
)

// Redis implements Cache on a Redis server. Every operation tolerates a dead
// connection; the caller just sees misses.
type Redis struct {
	client *redis.Client
}

type RedisOptions struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func NewRedis(opts RedisOptions) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Redis{client: client}, nil
}

func (r *Redis) Get(key string) (string, bool) {
	val, err := r.client.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		utils.ErrorLogger.Printf("Redis GET %s failed: %v", key, err)
		return "", false
	}
	return val, true
}

func (r *Redis) Set(key, value string, ttl time.Duration) {
	if err := r.client.Set(context.Background(), key, value, ttl).Err(); err != nil {
		utils.ErrorLogger.Printf("Redis SET %s failed: %v", key, err)
	}
}

func (r *Redis) Delete(key string) {
	if err := r.client.Del(context.Background(), key).Err(); err != nil {
		utils.ErrorLogger.Printf("Redis DEL %s failed: %v", key, err)
	}
}

func (r *Redis) DeletePattern(pattern string) {
	ctx := context.Background()
	keys, err := r.client.Keys(ctx, pattern).Result()
	if err != nil {
		utils.ErrorLogger.Printf("Redis KEYS %s failed: %v", pattern, err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		utils.ErrorLogger.Printf("Redis DEL pattern %s failed: %v", pattern, err)
	}
}

func (r *Redis) Close() error {
	return r.client.Close()
}
