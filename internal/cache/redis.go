package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisClient struct {
	client *redis.Client
	prefix string
}

var _ Ledger = (*RedisClient)(nil)

func NewRedisClient(redisURL, prefix string) (*RedisClient, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{
		client: client,
		prefix: prefix,
	}, nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

func (r *RedisClient) ListPosted(ctx context.Context, date string) ([]string, error) {
	keys, err := r.scan(ctx, date)
	if err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(keys))
	for _, key := range keys {
		if c, ok := categoryFromKey(key, r.prefix, date); ok {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

func (r *RedisClient) MarkPosted(ctx context.Context, date, category string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.prefix+MarkerKey(date, category), "true", ttl).Err(); err != nil {
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}

func (r *RedisClient) ClearDate(ctx context.Context, date string) (int, error) {
	keys, err := r.scan(ctx, date)
	if err != nil {
		return 0, err
	}

	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			return 0, fmt.Errorf("error deleting keys: %w", err)
		}
	}

	return len(keys), nil
}

func (r *RedisClient) scan(ctx context.Context, date string) ([]string, error) {
	iter := r.client.Scan(ctx, 0, r.prefix+markerPattern(date), 0).Iterator()
	var keys []string

	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("error scanning keys: %w", err)
	}

	return keys, nil
}
