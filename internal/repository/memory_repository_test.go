package repository

import (
    "context"
    "os"
    "path/filepath"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    appErrors "github.com/unclebandit/editorial-content-service/internal/errors"
    "github.com/unclebandit/editorial-content-service/internal/logger"
    "github.com/unclebandit/editorial-content-service/internal/model"
)

// tickingClock returns a clock that advances one second per call.
func tickingClock() func() time.Time {
    t := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
    return func() time.Time {
        t = t.Add(time.Second)
        return t
    }
}

func newTestMemoryRepo() *MemoryContentRepository {
    r := NewMemoryContentRepository(logger.Nop())
    r.now = tickingClock()
    return r
}

func sampleContent() *model.Content {
    return &model.Content{
        Channel:        model.ChannelMail,
        ProspectTier:   model.TierQualified,
        GenerationDate: model.NewDate(2025, 1, 1),
        GeneralTheme:   "general",
        WeeklyTheme:    "weekly",
        Body:           "body",
    }
}

func TestMemorySaveRoundTrip(t *testing.T) {
    ctx := context.Background()
    r := newTestMemoryRepo()

    req := &model.GenerationRequest{
        Channel:      model.ChannelLinkedIn,
        ProspectTier: model.TierHighlyQualified,
        Date:         model.NewDate(2025, 2, 3),
    }
    c := sampleContent()
    require.NoError(t, r.Save(ctx, c, req))

    assert.Equal(t, int64(1), c.ID)
    assert.False(t, c.CreatedAt.IsZero())

    all, err := r.ListAll(ctx, model.ContentFilter{})
    require.NoError(t, err)
    require.Len(t, all, 1)
    assert.Equal(t, model.ChannelLinkedIn, all[0].Channel, "request overrides channel")
    assert.Equal(t, model.TierHighlyQualified, all[0].ProspectTier)
    assert.Equal(t, "2025-02-03", all[0].GenerationDate.String())
    assert.Equal(t, "general", all[0].GeneralTheme)
    assert.Equal(t, 0, all[0].Used)
}

func TestMemoryMarkUsedAndListUnused(t *testing.T) {
    ctx := context.Background()
    r := newTestMemoryRepo()

    first, second := sampleContent(), sampleContent()
    require.NoError(t, r.Save(ctx, first, nil))
    require.NoError(t, r.Save(ctx, second, nil))

    require.NoError(t, r.MarkUsed(ctx, first.ID))

    unused := r.ListUnused(ctx)
    require.Len(t, unused, 1)
    assert.Equal(t, second.ID, unused[0].ID)

    err := r.MarkUsed(ctx, 999)
    var nf *appErrors.ErrContentNotFound
    require.ErrorAs(t, err, &nf)
    assert.Equal(t, int64(999), nf.ContentID)

    all, _ := r.ListAll(ctx, model.ContentFilter{})
    assert.Len(t, all, 2, "unknown id mutates nothing")
}

func TestMemoryListAllFiltersAndOrdering(t *testing.T) {
    ctx := context.Background()
    r := newTestMemoryRepo()

    channels := []model.Channel{model.ChannelLinkedIn, model.ChannelTikTok, model.ChannelMail}
    start := model.NewDate(2025, 3, 1)
    for day := 0; day < 14; day++ {
        for _, ch := range channels {
            c := sampleContent()
            c.Channel = ch
            c.GenerationDate = model.DateOf(start.AddDate(0, 0, day))
            if day%2 == 0 {
                c.ProspectTier = model.TierLowQualified
            }
            require.NoError(t, r.Save(ctx, c, nil))
        }
    }

    ch := model.ChannelTikTok
    tier := model.TierLowQualified
    from := model.NewDate(2025, 3, 3)
    to := model.NewDate(2025, 3, 9)
    got, err := r.ListAll(ctx, model.ContentFilter{Channel: &ch, ProspectTier: &tier, StartDate: &from, EndDate: &to})
    require.NoError(t, err)

    // low tier lands on odd dates: the 3rd, 5th, 7th and 9th
    require.Len(t, got, 4)
    for _, c := range got {
        assert.Equal(t, ch, c.Channel)
        assert.Equal(t, tier, c.ProspectTier)
        assert.False(t, c.GenerationDate.Before(from))
        assert.False(t, to.Before(c.GenerationDate))
    }
    assert.Equal(t, "2025-03-09", got[0].GenerationDate.String(), "newest first")
    assert.Equal(t, "2025-03-03", got[3].GenerationDate.String())

    for i := 1; i < len(got); i++ {
        assert.True(t, got[i-1].CreatedAt.After(got[i].CreatedAt))
    }
}

func TestFileRepositoryPersistsAcrossRestarts(t *testing.T) {
    ctx := context.Background()
    path := filepath.Join(t.TempDir(), "data", "contents.json")

    r, err := NewFileContentRepository(path, logger.Nop())
    require.NoError(t, err)
    c := sampleContent()
    require.NoError(t, r.Save(ctx, c, nil))
    require.NoError(t, r.MarkUsed(ctx, c.ID))

    reopened, err := NewFileContentRepository(path, logger.Nop())
    require.NoError(t, err)
    all, err := reopened.ListAll(ctx, model.ContentFilter{})
    require.NoError(t, err)
    require.Len(t, all, 1)
    assert.True(t, all[0].IsUsed())

    next := sampleContent()
    require.NoError(t, reopened.Save(ctx, next, nil))
    assert.Equal(t, c.ID+1, next.ID)
}

func TestFileRepositoryRejectsCorruptSnapshot(t *testing.T) {
    path := filepath.Join(t.TempDir(), "contents.json")
    require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

    _, err := NewFileContentRepository(path, logger.Nop())
    assert.Error(t, err)
}
