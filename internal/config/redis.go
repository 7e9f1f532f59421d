package config

// This file builds the Redis client used by the redis store driver.

import (
	"context"
	"crypto/tls"
	"errors"
	"io/fs"
	"time"

	"github.com/redis/go-redis/v9"
)

// Address returns host:port, preferring REDIS_HOST/REDIS_PORT over
// REDIS_ADDR when both are set, and localhost:6379 when neither is.
func (r RedisConfig) Address() string {
	if r.Host != "" && r.Port != "" {
		return r.Host + ":" + r.Port
	}
	if r.Addr != "" {
		return r.Addr
	}
	return "localhost:6379"
}

// NewRedisClient connects to Redis and pings it with a short timeout.  The
// client is closed and an error returned when the ping fails.
func NewRedisClient(ctx context.Context, rc RedisConfig) (*redis.Client, error) {
	var tlsConf *tls.Config
	if rc.TLS {
		tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      rc.Address(),
		Password:  rc.Password,
		DB:        rc.Index,
		TLSConfig: tlsConf,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func isNotExist(err error) bool { return errors.Is(err, fs.ErrNotExist) }
