// internal/db/db.go
package db

import (
    "context"
    "embed"
    "fmt"
    "io/fs"
    "sort"
    "strings"
    "time"

    "github.com/avast/retry-go/v4"
    "github.com/jmoiron/sqlx"
    _ "github.com/lib/pq"
    "go.uber.org/zap"

    "github.com/unclebandit/editorial-content-service/internal/config"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Open connects to Postgres and waits until the server answers a ping.
// Postgres usually starts alongside the service, so the first attempts
// are allowed to fail.
func Open(ctx context.Context, cfg config.Database, log *zap.SugaredLogger) (*sqlx.DB, error) {
    db, err := sqlx.Open("postgres", cfg.DSN())
    if err != nil {
        return nil, fmt.Errorf("open database: %w", err)
    }

    db.SetMaxOpenConns(cfg.MaxOpenConns)
    db.SetMaxIdleConns(cfg.MaxIdleConns)
    db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

    err = retry.Do(
        func() error { return db.PingContext(ctx) },
        retry.Context(ctx),
        retry.Attempts(cfg.ConnectAttempts),
        retry.Delay(1*time.Second),
        retry.LastErrorOnly(true),
        retry.OnRetry(func(n uint, err error) {
            log.Warnw("database not ready", "attempt", n+1, "host", cfg.Host, "err", err)
        }),
    )
    if err != nil {
        _ = db.Close()
        return nil, fmt.Errorf("ping database: %w", err)
    }

    log.Infow("connected to database", "host", cfg.Host, "name", cfg.Name)
    return db, nil
}

// Migrate applies every embedded *.up.sql file that is not yet recorded in
// schema_migrations, in file name order. Each file runs in its own
// transaction together with its bookkeeping row.
func Migrate(ctx context.Context, db *sqlx.DB, log *zap.SugaredLogger) error {
    if _, err := db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS schema_migrations (
            version    TEXT PRIMARY KEY,
            applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`); err != nil {
        return fmt.Errorf("create schema_migrations: %w", err)
    }

    var applied []string
    if err := db.SelectContext(ctx, &applied, `SELECT version FROM schema_migrations`); err != nil {
        return fmt.Errorf("read schema_migrations: %w", err)
    }
    done := make(map[string]bool, len(applied))
    for _, v := range applied {
        done[v] = true
    }

    files, err := upMigrations()
    if err != nil {
        return err
    }

    for _, name := range files {
        version := strings.TrimSuffix(name, ".up.sql")
        if done[version] {
            continue
        }
        body, err := migrationFS.ReadFile("migrations/" + name)
        if err != nil {
            return err
        }

        tx, err := db.BeginTxx(ctx, nil)
        if err != nil {
            return err
        }
        if _, err := tx.ExecContext(ctx, string(body)); err != nil {
            _ = tx.Rollback()
            return fmt.Errorf("apply migration %s: %w", version, err)
        }
        if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
            _ = tx.Rollback()
            return fmt.Errorf("record migration %s: %w", version, err)
        }
        if err := tx.Commit(); err != nil {
            return err
        }
        log.Infow("migration applied", "version", version)
    }
    return nil
}

func upMigrations() ([]string, error) {
    entries, err := fs.ReadDir(migrationFS, "migrations")
    if err != nil {
        return nil, err
    }
    var names []string
    for _, e := range entries {
        if strings.HasSuffix(e.Name(), ".up.sql") {
            names = append(names, e.Name())
        }
    }
    sort.Strings(names)
    return names, nil
}
