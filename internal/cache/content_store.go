package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"safespace/internal/model"
	"time"

	"github.com/redis/go-redis/v9"
)

// ContentStore is a shared tier behind the in-process daily cache
type ContentStore interface {
	Get(ctx context.Context, key string) (*model.DailyContent, error)
	Set(ctx context.Context, key string, content *model.DailyContent) error
}

type redisContentStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisContentStore creates a Redis-backed content store
func NewRedisContentStore(client *redis.Client) ContentStore {
	return &redisContentStore{
		client: client,
		ttl:    36 * time.Hour, // Outlives the day it was generated for
	}
}

func (c *redisContentStore) key(key string) string {
	return fmt.Sprintf("daily:%s", key)
}

func (c *redisContentStore) Set(ctx context.Context, key string, content *model.DailyContent) error {
	data, err := json.Marshal(content)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(key), data, c.ttl).Err()
}

// Get returns nil, nil on a miss
func (c *redisContentStore) Get(ctx context.Context, key string) (*model.DailyContent, error) {
	data, err := c.client.Get(ctx, c.key(key)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var content model.DailyContent
	if err := json.Unmarshal([]byte(data), &content); err != nil {
		return nil, err
	}
	return &content, nil
}
