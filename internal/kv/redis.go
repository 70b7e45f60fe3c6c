package kv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/redis/go-redis/v9"
)

// Redis is the production Store implementation over go-redis.
type Redis struct {
	client *redis.Client
}

// OpenRedis connects to the Redis server described by cfg and verifies the
// connection with a ping. A server that cannot be reached fails here with
// CodeConnection rather than on the first real operation.
func OpenRedis(ctx context.Context, cfg Config) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, &StoreError{Code: CodeConnection, Op: "ping", Err: err}
	}

	slog.Debug("redis store opened", "addr", cfg.Addr, "db", cfg.DB)
	return &Redis{client: client}, nil
}

// FlushAll removes every key in the selected database.
func (r *Redis) FlushAll(ctx context.Context) error {
	if err := r.client.FlushDB(ctx).Err(); err != nil {
		return wrapRedisError(CodeWrite, "flushall", "", err)
	}
	return nil
}

// Set writes value under key.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return wrapRedisError(CodeWrite, "set", key, err)
	}
	return nil
}

// Get returns the value stored under key, or ErrNotFound.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("get %q: %w", key, ErrNotFound)
		}
		return nil, wrapRedisError(CodeRead, "get", key, err)
	}
	return data, nil
}

// Incr increments the integer at key and returns the new value.
func (r *Redis) Incr(ctx context.Context, key string) (int64, error) {
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, wrapRedisError(CodeWrite, "incr", key, err)
	}
	return n, nil
}

// RPush appends value to the list at key.
func (r *Redis) RPush(ctx context.Context, key string, value string) error {
	if err := r.client.RPush(ctx, key, value).Err(); err != nil {
		return wrapRedisError(CodeWrite, "rpush", key, err)
	}
	return nil
}

// LRange returns the list elements between start and stop inclusive.
func (r *Redis) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	items, err := r.client.LRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, wrapRedisError(CodeRead, "lrange", key, err)
	}
	return items, nil
}

// Close releases the client connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

// wrapRedisError classifies a go-redis error into a StoreError. Network
// unreachability mid-call is reported as CodeConnection so callers can
// distinguish it from a server-side rejection.
func wrapRedisError(code ErrorCode, op, key string, err error) error {
	if isNetworkError(err) {
		code = CodeConnection
	}
	return &StoreError{Code: code, Op: op, Key: key, Err: err}
}

func isNetworkError(err error) bool {
	// net.OpError and friends implement net.Error; any of them means we
	// never got an answer from the server.
	var ne net.Error
	return errors.As(err, &ne)
}
