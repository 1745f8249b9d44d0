package repository

import (
    "context"
    "path/filepath"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/unclebandit/editorial-content-service/internal/config"
    "github.com/unclebandit/editorial-content-service/internal/logger"
)

func TestOpenMemoryAndFileBackends(t *testing.T) {
    ctx := context.Background()

    store, closer, err := Open(ctx, config.Storage{Backend: "memory"}, config.Database{}, logger.Nop())
    require.NoError(t, err)
    assert.IsType(t, &MemoryContentRepository{}, store)
    assert.NoError(t, closer())

    path := filepath.Join(t.TempDir(), "contents.json")
    store, closer, err = Open(ctx, config.Storage{Backend: "file", FilePath: path}, config.Database{}, logger.Nop())
    require.NoError(t, err)
    require.NoError(t, store.Save(ctx, sampleContent(), nil))
    assert.FileExists(t, path)
    assert.NoError(t, closer())
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
    _, closer, err := Open(context.Background(), config.Storage{Backend: "redis"}, config.Database{}, logger.Nop())
    require.Error(t, err)
    assert.NotNil(t, closer)
}
