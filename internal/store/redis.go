package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Redis is a Port backed by plain Redis strings.
type Redis struct {
	rdb *goredis.Client
}

var (
	_ Port   = (*Redis)(nil)
	_ Lister = (*Redis)(nil)
)

// NewRedis connects to addr and pings it before returning.
func NewRedis(ctx context.Context, addr string) (*Redis, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Redis{rdb: rdb}, nil
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(rdb *goredis.Client) *Redis {
	return &Redis{rdb: rdb}
}

// Client exposes the underlying client so notifications can share it.
func (r *Redis) Client() *goredis.Client {
	return r.rdb
}

func (r *Redis) Close() error {
	if r == nil || r.rdb == nil {
		return nil
	}
	return r.rdb.Close()
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.rdb.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, opErr("get", key, err)
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	return opErr("set", key, r.rdb.Set(ctx, key, value, 0).Err())
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	return opErr("remove", key, r.rdb.Del(ctx, key).Err())
}

func (r *Redis) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := r.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, opErr("keys", prefix, err)
	}
	sort.Strings(keys)
	return keys, nil
}
