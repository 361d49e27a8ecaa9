package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	fieldData    = "data"
	fieldCreated = "created"
	scanCount    = 100
)

// RedisStore keeps entries in Redis hashes under a key prefix. Each hash
// holds the value and its creation time so Clear can age entries out.
type RedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisStore connects to url, e.g. redis://localhost:6379/0, and pings
// the server.
func NewRedisStore(ctx context.Context, url, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewRedisStoreFromClient(client, prefix), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, now: time.Now}
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.HGet(ctx, s.prefix+key, fieldData).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	full := s.prefix + key
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, full, fieldData, value, fieldCreated, s.now().Unix())
		pipe.Expire(ctx, full, ttl)
		return nil
	})
	return err
}

func (s *RedisStore) Clear(ctx context.Context, maxAge time.Duration) (int, error) {
	now := s.now()
	cleared := 0
	iter := s.client.Scan(ctx, 0, s.prefix+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if maxAge > 0 {
			created, err := s.client.HGet(ctx, key, fieldCreated).Result()
			if errors.Is(err, redis.Nil) {
				continue
			}
			if err != nil {
				return cleared, err
			}
			sec, err := strconv.ParseInt(created, 10, 64)
			if err == nil && now.Sub(time.Unix(sec, 0)) <= maxAge {
				continue
			}
		}
		n, err := s.client.Del(ctx, key).Result()
		if err != nil {
			return cleared, err
		}
		cleared += int(n)
	}
	if err := iter.Err(); err != nil {
		return cleared, err
	}
	return cleared, nil
}
