// internal/service/content_service.go
package service

import (
    "context"
    "fmt"
    "math/rand"

    "go.uber.org/zap"
    "golang.org/x/sync/errgroup"

    appErrors "github.com/unclebandit/editorial-content-service/internal/errors"
    "github.com/unclebandit/editorial-content-service/internal/export"
    "github.com/unclebandit/editorial-content-service/internal/metrics"
    "github.com/unclebandit/editorial-content-service/internal/model"
    "github.com/unclebandit/editorial-content-service/internal/queue"
)

const (
    DefaultPageLimit = 100
    MaxPageLimit     = 1000
)

type ContentService struct {
    store     ContentStore
    generator Generator
    publisher Publisher
    log       *zap.SugaredLogger

    // pickTier returns an index in [0, n).
    pickTier func(n int) int
}

func NewContentService(store ContentStore, generator Generator, publisher Publisher, log *zap.SugaredLogger) *ContentService {
    if publisher == nil {
        publisher = queue.NopPublisher{}
    }
    return &ContentService{
        store:     store,
        generator: generator,
        publisher: publisher,
        log:       log,
        pickTier:  rand.Intn,
    }
}

// ContentPage is one window over a filtered listing.
type ContentPage struct {
    Total    int             `json:"total"`
    Limit    int             `json:"limit"`
    Offset   int             `json:"offset"`
    Contents []model.Content `json:"contents"`
}

// GenerateContent generates and stores one record. Only persistence can
// fail; generation itself always produces content.
func (s *ContentService) GenerateContent(ctx context.Context, req model.GenerationRequest) (*model.Content, error) {
    content := s.generator.Generate(ctx, req)

    if err := s.store.Save(ctx, &content, &req); err != nil {
        metrics.PersistFailuresTotal.Inc()
        return nil, fmt.Errorf("persist generated content: %w", err)
    }

    if err := s.publisher.Publish(ctx, queue.NewContentGenerated(content)); err != nil {
        metrics.EventsTotal.WithLabelValues("failed").Inc()
        s.log.Warnw("failed to publish content event", "content_id", content.ID, "err", err)
    } else {
        metrics.EventsTotal.WithLabelValues("published").Inc()
    }

    s.log.Infow("content generated",
        "id", content.ID,
        "channel", content.Channel,
        "tier", content.ProspectTier,
        "date", content.GenerationDate.String())
    return &content, nil
}

// GenerateBatch produces one record per channel for date, each with a
// randomly drawn tier. Results follow channel order. The first failure
// fails the whole batch.
func (s *ContentService) GenerateBatch(ctx context.Context, date model.Date) ([]model.Content, error) {
    tiers := model.ProspectTiers()
    channels := model.Channels()

    reqs := make([]model.GenerationRequest, len(channels))
    for i, ch := range channels {
        reqs[i] = model.GenerationRequest{
            Channel:      ch,
            ProspectTier: tiers[s.pickTier(len(tiers))],
            Date:         date,
        }
    }

    results := make([]model.Content, len(reqs))
    g, gctx := errgroup.WithContext(ctx)
    for i, req := range reqs {
        i, req := i, req
        g.Go(func() error {
            c, err := s.GenerateContent(gctx, req)
            if err != nil {
                return fmt.Errorf("batch %s: %w", req.Channel, err)
            }
            results[i] = *c
            return nil
        })
    }
    if err := g.Wait(); err != nil {
        s.log.Errorw("batch generation failed", "date", date.String(), "err", err)
        return nil, err
    }
    return results, nil
}

// ListContents filters through the store, then paginates in memory.
func (s *ContentService) ListContents(ctx context.Context, filter model.ContentFilter, limit, offset int) (*ContentPage, error) {
    if limit < 0 || limit > MaxPageLimit {
        return nil, appErrors.NewValidation("limit", fmt.Sprintf("must be between 0 and %d", MaxPageLimit))
    }
    if offset < 0 {
        return nil, appErrors.NewValidation("offset", "must be zero or greater")
    }

    all, err := s.store.ListAll(ctx, filter)
    if err != nil {
        return nil, err
    }

    page := &ContentPage{Total: len(all), Limit: limit, Offset: offset, Contents: []model.Content{}}
    if offset < len(all) {
        end := min(offset+limit, len(all))
        page.Contents = all[offset:end]
    }
    return page, nil
}

// ExportContents renders every record matching filter as a workbook.
func (s *ContentService) ExportContents(ctx context.Context, filter model.ContentFilter) ([]byte, error) {
    all, err := s.store.ListAll(ctx, filter)
    if err != nil {
        return nil, err
    }
    if len(all) == 0 {
        return nil, appErrors.NewNoContent()
    }

    doc, err := export.Workbook(all)
    if err != nil {
        return nil, fmt.Errorf("build workbook: %w", err)
    }
    metrics.ExportsTotal.Inc()
    s.log.Infow("contents exported", "records", len(all))
    return doc, nil
}

func (s *ContentService) ListUnused(ctx context.Context) []model.Content {
    return s.store.ListUnused(ctx)
}

func (s *ContentService) MarkUsed(ctx context.Context, id int64) error {
    if err := s.store.MarkUsed(ctx, id); err != nil {
        return err
    }
    s.log.Infow("content marked used", "id", id)
    return nil
}
