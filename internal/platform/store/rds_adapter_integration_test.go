//go:build integration_redis
// +build integration_redis

package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start redis: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := c.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	return fmt.Sprintf("%s:%s", host, port.Port())
}

func TestIntegration_RedisKV(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, Config{RDS: RedisConfig{Enabled: true, Addr: startRedis(t)}})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(ctx) })

	if err := s.RDS.(Pinger).Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	if err := s.RDS.Set(ctx, "session:revoked:abc", "1", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	ok, err := s.RDS.Exists(ctx, "session:revoked:abc")
	if err != nil || !ok {
		t.Fatalf("exists = %v, %v", ok, err)
	}
	ok, err = s.RDS.Exists(ctx, "session:revoked:missing")
	if err != nil || ok {
		t.Fatalf("missing exists = %v, %v", ok, err)
	}

	for want := int64(1); want <= 3; want++ {
		n, err := s.RDS.Incr(ctx, "rate:1.2.3.4", time.Minute)
		if err != nil {
			t.Fatalf("incr: %v", err)
		}
		if n != want {
			t.Fatalf("incr = %d, want %d", n, want)
		}
	}
}
