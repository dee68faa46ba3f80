package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window counter kept in Redis, shared by every API instance.
type Limiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	prefix string
}

type Options struct {
	Limit  int64
	Window time.Duration
	Prefix string
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
}

func New(client *redis.Client, opts Options) *Limiter {
	if opts.Prefix == "" {
		opts.Prefix = "ratelimit"
	}
	return &Limiter{
		client: client,
		limit:  opts.Limit,
		window: opts.Window,
		prefix: opts.Prefix,
	}
}

// Allow counts one hit for 'key' in the current window. The remaining
// budget is returned with the decision.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, int64, error) {
	bucket := time.Now().UnixNano() / int64(l.window)
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, bucket)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("rate limit: %w", err)
	}

	count := incr.Val()
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= l.limit, remaining, nil
}

func (l *Limiter) Ping(ctx context.Context) error {
	if err := l.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}
