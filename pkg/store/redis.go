package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisPrefix = "studyplan:"

// Redis keeps every key as a string value under the studyplan: namespace.
type Redis struct {
	client *redis.Client
}

// OpenRedis connects to the server named by url, e.g. redis://localhost:6379/0.
func OpenRedis(ctx context.Context, url string) (*Redis, error) {
	if url == "" {
		return nil, errors.New("store: redis url required")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("store: parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("store: connect redis: %w", err)
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Read(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, redisPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, nil
}

func (r *Redis) Write(ctx context.Context, key string, val []byte) error {
	if err := r.client.Set(ctx, redisPrefix+key, val, 0).Err(); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
