//go:build integration_pg
// +build integration_pg

// Package pgtest starts a disposable migrated postgres for repo integration tests
package pgtest

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"admissions/internal/platform/store"
	"admissions/internal/platform/store/migrate"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Start launches postgres, applies the embedded schema and returns the sql seam
// the container is terminated when the test finishes
func Start(t *testing.T) store.TxRunner {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "admissions",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("pgtest: start container: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("pgtest: host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("pgtest: mapped port: %v", err)
	}

	st, err := store.Open(ctx, store.Config{
		AppName: "admissions-test",
		PG: store.PGConfig{
			Enabled:  true,
			URL:      fmt.Sprintf("postgres://postgres:postgres@%s:%s/admissions?sslmode=disable", host, mp.Port()),
			MaxConns: 4,
		},
	}, store.WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		t.Fatalf("pgtest: open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	if _, err := migrate.Up(ctx, st.PG); err != nil {
		t.Fatalf("pgtest: migrate: %v", err)
	}
	return st.PG
}

// Exec runs a fixture statement and fails the test on error
func Exec(t *testing.T, db store.RowQuerier, sql string, args ...any) {
	t.Helper()
	if _, err := db.Exec(context.Background(), sql, args...); err != nil {
		t.Fatalf("pgtest: exec %q: %v", sql, err)
	}
}

// Insert runs an insert returning id::text and returns the id
func Insert(t *testing.T, db store.RowQuerier, sql string, args ...any) string {
	t.Helper()
	var id string
	if err := db.QueryRow(context.Background(), sql, args...).Scan(&id); err != nil {
		t.Fatalf("pgtest: insert %q: %v", sql, err)
	}
	return id
}
