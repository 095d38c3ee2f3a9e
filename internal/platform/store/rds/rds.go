// Package rds provides a Redis client with short network timeouts
package rds

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config configures the redis client
type Config struct {
	Addr     string
	Password string
	DB       int
}

// RDS wraps a go-redis client
type RDS struct {
	Client *redis.Client
}

// Open connects to redis and verifies the server answers a ping
func Open(ctx context.Context, cfg Config) (*RDS, error) {
	if cfg.Addr == "" {
		return nil, errors.New("rds: addr is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	r := &RDS{Client: client}
	if err := r.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}
	return r, nil
}

// Ping verifies redis connectivity
func (r *RDS) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("rds: nil client")
	}
	return r.Client.Ping(ctx).Err()
}

// Close releases the connection pool
func (r *RDS) Close() error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Close()
}
