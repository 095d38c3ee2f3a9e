// Package migrate applies the embedded postgres schema
package migrate

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"admissions/internal/platform/logger"
	"admissions/internal/platform/store"
)

//go:embed sql/*.sql
var files embed.FS

// lockKey serializes concurrent migrators across API replicas
const lockKey = 727_001

// Migration is one versioned schema step
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Load returns the embedded migrations ordered by version
func Load() ([]Migration, error) {
	return load(files)
}

func load(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.Glob(fsys, "sql/*.sql")
	if err != nil {
		return nil, err
	}
	out := make([]Migration, 0, len(entries))
	seen := map[int]string{}
	for _, p := range entries {
		base := strings.TrimSuffix(path.Base(p), ".sql")
		num, name, ok := strings.Cut(base, "_")
		if !ok {
			return nil, fmt.Errorf("migrate: %s: want <version>_<name>.sql", p)
		}
		v, err := strconv.Atoi(num)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("migrate: %s: bad version %q", p, num)
		}
		if prev, dup := seen[v]; dup {
			return nil, fmt.Errorf("migrate: version %d used by %s and %s", v, prev, p)
		}
		seen[v] = p
		body, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Version: v, Name: name, SQL: string(body)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// Up applies every embedded migration not yet recorded in schema_migrations
// all pending steps run in one transaction under an advisory lock
func Up(ctx context.Context, db store.TxRunner) (int, error) {
	ms, err := Load()
	if err != nil {
		return 0, err
	}
	return apply(ctx, db, ms)
}

func apply(ctx context.Context, db store.TxRunner, ms []Migration) (int, error) {
	log := logger.Named("migrate")
	applied := 0
	err := db.Tx(ctx, func(q store.RowQuerier) error {
		if _, err := q.Exec(ctx, "select pg_advisory_xact_lock($1)", lockKey); err != nil {
			return fmt.Errorf("migrate: lock: %w", err)
		}
		if _, err := q.Exec(ctx, `
create table if not exists schema_migrations (
    version     integer primary key,
    name        text not null,
    applied_at  timestamptz not null default now()
)`); err != nil {
			return fmt.Errorf("migrate: bootstrap: %w", err)
		}

		done, err := versions(ctx, q)
		if err != nil {
			return err
		}
		for _, m := range ms {
			if done[m.Version] {
				continue
			}
			if _, err := q.Exec(ctx, m.SQL); err != nil {
				return fmt.Errorf("migrate: %04d_%s: %w", m.Version, m.Name, err)
			}
			if _, err := q.Exec(ctx,
				"insert into schema_migrations (version, name) values ($1, $2)", m.Version, m.Name); err != nil {
				return fmt.Errorf("migrate: record %d: %w", m.Version, err)
			}
			log.Info().Int("version", m.Version).Str("name", m.Name).Msg("migration applied")
			applied++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}

func versions(ctx context.Context, q store.RowQuerier) (map[int]bool, error) {
	rows, err := q.Query(ctx, "select version from schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("migrate: read versions: %w", err)
	}
	defer rows.Close()
	out := map[int]bool{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out[v] = true
	}
	return out, rows.Err()
}
