package store

import (
	"context"
	"fmt"
	"time"

	"admissions/internal/platform/store/pg"
	"admissions/internal/platform/store/rds"
)

// connect backoff doubles from backoffStart up to backoffCeiling
const (
	backoffStart   = 150 * time.Millisecond
	backoffCeiling = 2 * time.Second
)

// openPG builds the pool and pings it until healthy, ConnectRetries bounds the attempts
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
		AppName:  cfg.AppName,
	}, tracer)
	if err != nil {
		return nil, err
	}

	attempts := cfg.PG.ConnectRetries
	if attempts <= 0 {
		attempts = 6
	}
	timeout := cfg.PG.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	var lastErr error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		lastErr = p.Pool.Ping(pingCtx)
		cancel()
		if lastErr == nil {
			return newPGAdapter(p), nil
		}
		s.Log.Warn().Err(lastErr).Int("attempt", i+1).Int("of", attempts).Msg("postgres not ready")

		select {
		case <-ctx.Done():
			p.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, backoffCeiling)
	}

	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, lastErr)
}

// openRDS dials redis and wraps it with the kv adapter
func openRDS(ctx context.Context, cfg Config) (KV, error) {
	r, err := rds.Open(ctx, rds.Config{
		Addr:     cfg.RDS.Addr,
		Password: cfg.RDS.Password,
		DB:       cfg.RDS.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("redis open failed: %w", err)
	}
	return newRDSAdapter(r), nil
}
