// Package store opens postgres and redis behind small seams repos and
// middleware depend on, either backend may be disabled
package store

import (
	"context"
	"errors"
	"time"

	"admissions/internal/platform/logger"
)

// Store holds the opened backends, a nil field is a disabled backend
type Store struct {
	// Log is handed to the sql tracer, the zero value discards
	Log logger.Logger
	PG  TxRunner
	RDS KV
}

// Row is a single result row
type Row interface {
	Scan(dest ...any) error
}

// Rows iterates a result set, Close is safe after exhaustion
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag reports what an Exec touched
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is what repos run sql against, a pool or an open transaction
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner commits when fn returns nil and rolls back otherwise
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// KV backs session revocation and the submit rate limiter
type KV interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	// Incr returns the new value, ttl applies from the first increment
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Close() error
}

// Pinger is any seam that can report readiness, the meta ready probe uses it
type Pinger interface{ Ping(context.Context) error }

// Open connects the backends cfg enables, the rest stay nil
// a redis failure closes the already opened postgres pool
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	// a zero zerolog.Logger writes nowhere, copying it keeps subclients nil safe
	s.Log = s.Log.With().Logger()

	var err error
	if cfg.PG.Enabled {
		if s.PG, err = openPG(ctx, cfg, s); err != nil {
			return nil, err
		}
	}
	if cfg.RDS.Enabled {
		if s.RDS, err = openRDS(ctx, cfg); err != nil {
			return nil, errors.Join(err, s.Close(ctx))
		}
	}
	return s, nil
}

// Close releases every opened backend and joins their errors
func (s *Store) Close(context.Context) error {
	var errs []error
	if s.RDS != nil {
		errs = append(errs, s.RDS.Close())
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
