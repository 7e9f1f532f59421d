package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the key holding the snapshot when none is configured.
const DefaultRedisKey = "hotel:snapshot"

// RedisBackend keeps the snapshot under one Redis key.  SET replaces the
// value atomically.
type RedisBackend struct {
	rdb redis.Cmdable
	key string
}

// NewRedisBackend returns a backend storing the snapshot at key.
func NewRedisBackend(rdb redis.Cmdable, key string) *RedisBackend {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisBackend{rdb: rdb, key: key}
}

func (r *RedisBackend) Location() string { return "redis:" + r.key }

func (r *RedisBackend) Read(ctx context.Context) ([]byte, error) {
	data, err := r.rdb.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSnapshotNotFound
		}
		return nil, err
	}
	return data, nil
}

func (r *RedisBackend) Write(ctx context.Context, data []byte) error {
	return r.rdb.Set(ctx, r.key, data, 0).Err()
}
