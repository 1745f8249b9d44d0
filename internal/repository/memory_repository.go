package repository

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io/fs"
    "os"
    "path/filepath"
    "sort"
    "sync"
    "time"

    "go.uber.org/zap"

    appErrors "github.com/unclebandit/editorial-content-service/internal/errors"
    "github.com/unclebandit/editorial-content-service/internal/model"
)

// MemoryContentRepository keeps records in process. With a snapshot path it
// loads the file on start and rewrites it after every write, which is
// enough for local runs without Postgres.
type MemoryContentRepository struct {
    mu       sync.RWMutex
    contents []model.Content
    nextID   int64
    path     string
    now      func() time.Time
    log      *zap.SugaredLogger
}

func NewMemoryContentRepository(log *zap.SugaredLogger) *MemoryContentRepository {
    return &MemoryContentRepository{nextID: 1, now: time.Now, log: log}
}

// NewFileContentRepository is a memory repository backed by a JSON snapshot.
func NewFileContentRepository(path string, log *zap.SugaredLogger) (*MemoryContentRepository, error) {
    r := NewMemoryContentRepository(log)
    r.path = path

    b, err := os.ReadFile(path)
    switch {
    case errors.Is(err, fs.ErrNotExist):
        return r, nil
    case err != nil:
        return nil, fmt.Errorf("read snapshot %s: %w", path, err)
    }

    if len(b) > 0 {
        if err := json.Unmarshal(b, &r.contents); err != nil {
            return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
        }
    }
    for _, c := range r.contents {
        if c.ID >= r.nextID {
            r.nextID = c.ID + 1
        }
    }
    log.Infow("content snapshot loaded", "path", path, "records", len(r.contents))
    return r, nil
}

func (r *MemoryContentRepository) Save(ctx context.Context, c *model.Content, req *model.GenerationRequest) error {
    applyRequest(c, req)

    r.mu.Lock()
    defer r.mu.Unlock()

    now := r.now()
    stored := *c
    stored.ID = r.nextID
    stored.CreatedAt = now
    stored.UpdatedAt = now

    r.contents = append(r.contents, stored)
    if err := r.persist(); err != nil {
        r.contents = r.contents[:len(r.contents)-1]
        r.log.Errorw("failed to save content", "channel", c.Channel, "tier", c.ProspectTier, "err", err)
        return fmt.Errorf("save content: %w", err)
    }

    r.nextID++
    *c = stored
    return nil
}

func (r *MemoryContentRepository) ListUnused(ctx context.Context) []model.Content {
    r.mu.RLock()
    defer r.mu.RUnlock()

    out := []model.Content{}
    for _, c := range r.contents {
        if !c.IsUsed() {
            out = append(out, c)
        }
    }
    sortNewestFirst(out)
    return out
}

func (r *MemoryContentRepository) ListAll(ctx context.Context, filter model.ContentFilter) ([]model.Content, error) {
    r.mu.RLock()
    defer r.mu.RUnlock()

    out := []model.Content{}
    for _, c := range r.contents {
        if filter.Matches(c) {
            out = append(out, c)
        }
    }
    sortNewestFirst(out)
    return out, nil
}

func (r *MemoryContentRepository) MarkUsed(ctx context.Context, id int64) error {
    r.mu.Lock()
    defer r.mu.Unlock()

    for i := range r.contents {
        if r.contents[i].ID != id {
            continue
        }
        prev := r.contents[i]
        r.contents[i].Used = 1
        r.contents[i].UpdatedAt = r.now()
        if err := r.persist(); err != nil {
            r.contents[i] = prev
            return fmt.Errorf("mark content %d used: %w", id, err)
        }
        return nil
    }
    return appErrors.NewContentNotFound(id)
}

// persist rewrites the snapshot atomically. Callers hold mu.
func (r *MemoryContentRepository) persist() error {
    if r.path == "" {
        return nil
    }
    b, err := json.MarshalIndent(r.contents, "", "  ")
    if err != nil {
        return err
    }
    if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
        return err
    }
    tmp := r.path + ".tmp"
    if err := os.WriteFile(tmp, b, 0o644); err != nil {
        return err
    }
    return os.Rename(tmp, r.path)
}

func sortNewestFirst(cs []model.Content) {
    sort.SliceStable(cs, func(i, j int) bool {
        if !cs[i].CreatedAt.Equal(cs[j].CreatedAt) {
            return cs[i].CreatedAt.After(cs[j].CreatedAt)
        }
        return cs[i].ID > cs[j].ID
    })
}
