package repository

import (
    "context"
    "fmt"

    "go.uber.org/zap"

    "github.com/unclebandit/editorial-content-service/internal/config"
    "github.com/unclebandit/editorial-content-service/internal/db"
)

// Open builds the configured store. The returned closer releases whatever
// the backend holds and is never nil.
func Open(ctx context.Context, storage config.Storage, database config.Database, log *zap.SugaredLogger) (ContentRepositoryInterface, func() error, error) {
    noop := func() error { return nil }

    switch storage.Backend {
    case "", "postgres":
        conn, err := db.Open(ctx, database, log)
        if err != nil {
            return nil, noop, err
        }
        if err := db.Migrate(ctx, conn, log); err != nil {
            conn.Close()
            return nil, noop, err
        }
        return NewPostgresContentRepository(conn, log), conn.Close, nil

    case "memory":
        log.Warnw("using in-memory storage, records are lost on restart")
        return NewMemoryContentRepository(log), noop, nil

    case "file":
        repo, err := NewFileContentRepository(storage.FilePath, log)
        if err != nil {
            return nil, noop, err
        }
        return repo, noop, nil

    default:
        return nil, noop, fmt.Errorf("unsupported storage backend %q", storage.Backend)
    }
}
