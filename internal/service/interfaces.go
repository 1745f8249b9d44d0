package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
    "context"

    "github.com/unclebandit/editorial-content-service/internal/model"
    "github.com/unclebandit/editorial-content-service/internal/queue"
)

type ContentStore interface {
    Save(ctx context.Context, c *model.Content, req *model.GenerationRequest) error
    ListUnused(ctx context.Context) []model.Content
    ListAll(ctx context.Context, filter model.ContentFilter) ([]model.Content, error)
    MarkUsed(ctx context.Context, id int64) error
}

type Generator interface {
    Generate(ctx context.Context, req model.GenerationRequest) model.Content
}

type Publisher interface {
    Publish(ctx context.Context, event queue.ContentEvent) error
    Close() error
}
