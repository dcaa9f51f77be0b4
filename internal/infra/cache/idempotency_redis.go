package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainrepo "github.com/vivekmanjrekar09-star/BOOK4U/internal/repository"

	"github.com/redis/go-redis/v9"
)

const idempotencyKeyPrefix = "idem:checkout:"

// NewRedisClient はURLから接続してpingする
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// チェックアウトの冪等キーをRedisに持つ
type IdempotencyRedisStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

var _ domainrepo.IdempotencyStore = (*IdempotencyRedisStore)(nil)

// DI
func NewIdempotencyRedisStore(rdb redis.Cmdable, ttl time.Duration) *IdempotencyRedisStore {
	return &IdempotencyRedisStore{rdb: rdb, ttl: ttl}
}

func (s *IdempotencyRedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.Get(ctx, idempotencyKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get idempotency key: %w", err)
	}
	return v, nil
}

func (s *IdempotencyRedisStore) Put(ctx context.Context, key string, orderID string) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, idempotencyKeyPrefix+key, orderID, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("set idempotency key: %w", err)
	}
	return ok, nil
}

func (s *IdempotencyRedisStore) Release(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, idempotencyKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}
