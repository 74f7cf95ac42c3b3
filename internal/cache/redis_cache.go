package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jagriti-aswal/Communitychat2/internal/config"
	"github.com/jagriti-aswal/Communitychat2/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// RedisBoardCache implements BoardCache on Redis.
type RedisBoardCache struct {
	client *redis.Client
	prefix string
}

func NewRedisBoardCache(cfg config.RedisConfig) (*RedisBoardCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisBoardCache{
		client: client,
		prefix: cfg.CachePrefix,
	}, nil
}

func (c *RedisBoardCache) QuestionsKey() string {
	return fmt.Sprintf("%s:questions", c.prefix)
}

func (c *RedisBoardCache) MessagesKey(room string) string {
	return fmt.Sprintf("%s:messages:%s", c.prefix, room)
}

func (c *RedisBoardCache) GetQuestions(ctx context.Context, key string) ([]domain.Question, error) {
	var questions []domain.Question
	if err := c.get(ctx, key, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (c *RedisBoardCache) SetQuestions(ctx context.Context, key string, questions []domain.Question, ttl time.Duration) error {
	return c.set(ctx, key, questions, ttl)
}

func (c *RedisBoardCache) GetMessages(ctx context.Context, key string) ([]domain.ChatMessage, error) {
	var messages []domain.ChatMessage
	if err := c.get(ctx, key, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (c *RedisBoardCache) SetMessages(ctx context.Context, key string, messages []domain.ChatMessage, ttl time.Duration) error {
	return c.set(ctx, key, messages, ttl)
}

func (c *RedisBoardCache) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

func (c *RedisBoardCache) get(ctx context.Context, key string, out interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get from redis: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return nil
}

func (c *RedisBoardCache) set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}
	return nil
}

func (c *RedisBoardCache) Close() error {
	return c.client.Close()
}
