package store

import (
	"context"
	"errors"
	"time"

	"admissions/internal/platform/store/rds"

	"github.com/redis/go-redis/v9"
)

// newRDSAdapter wraps an open *rds.RDS as the store.KV seam
func newRDSAdapter(r *rds.RDS) KV {
	return &redisAdapter{inner: r}
}

// redisAdapter adapts *rds.RDS to the store.KV interface
type redisAdapter struct {
	inner *rds.RDS
}

var (
	_ KV     = (*redisAdapter)(nil)
	_ Pinger = (*redisAdapter)(nil)
)

func (a *redisAdapter) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return a.inner.Client.Set(ctx, key, value, ttl).Err()
}

func (a *redisAdapter) Exists(ctx context.Context, key string) (bool, error) {
	n, err := a.inner.Client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Incr bumps key and starts its ttl on the first increment only
func (a *redisAdapter) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := a.inner.Client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, key)
		p.ExpireNX(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (a *redisAdapter) Close() error { return a.inner.Close() }

// Ping verifies connectivity with redis
func (a *redisAdapter) Ping(ctx context.Context) error {
	if a == nil || a.inner == nil {
		return errors.New("store: nil redis adapter")
	}
	return a.inner.Ping(ctx)
}
