package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version    text        PRIMARY KEY,
	applied_at timestamptz NOT NULL DEFAULT now()
)`

// migrationLockID は複数プロセスからの同時マイグレーションを直列化します
var migrationLockID = GenerateLockID("catalog", "schema_migrations")

// Migrate は未適用のマイグレーションをファイル名順に適用し、適用したバージョンを返します
// 全体を1トランザクションで実行するため、途中で失敗した場合は何も適用されません
func Migrate(ctx context.Context, db *Database, log *slog.Logger) ([]string, error) {
	names, err := migrationFiles()
	if err != nil {
		return nil, err
	}

	txProvider := NewTransactionProvider(db.Pool)
	return Transact(ctx, txProvider, func(a *Adapter) ([]string, error) {
		if err := a.Locks.Acquire(ctx, migrationLockID); err != nil {
			return nil, err
		}
		if _, err := a.Tx.Exec(ctx, createMigrationsTable); err != nil {
			return nil, fmt.Errorf("failed to create schema_migrations: %w", err)
		}

		applied := make([]string, 0)
		for _, name := range names {
			version := strings.TrimSuffix(name, ".sql")

			var exists bool
			if err := a.Tx.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
			).Scan(&exists); err != nil {
				return nil, fmt.Errorf("failed to check migration %s: %w", version, err)
			}
			if exists {
				continue
			}

			body, err := migrationFS.ReadFile("migrations/" + name)
			if err != nil {
				return nil, fmt.Errorf("failed to read migration %s: %w", version, err)
			}
			if _, err := a.Tx.Exec(ctx, string(body)); err != nil {
				return nil, fmt.Errorf("failed to apply migration %s: %w", version, err)
			}
			if _, err := a.Tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
				return nil, fmt.Errorf("failed to record migration %s: %w", version, err)
			}

			log.Info("Applied migration", "version", version)
			applied = append(applied, version)
		}

		return applied, nil
	})
}

func migrationFiles() ([]string, error) {
	entries, err := fs.ReadDir(migrationFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
