package queue

import (
    "context"
    "fmt"
    "time"

    "github.com/google/uuid"
    "go.uber.org/zap"

    "github.com/unclebandit/editorial-content-service/internal/config"
    "github.com/unclebandit/editorial-content-service/internal/metrics"
    "github.com/unclebandit/editorial-content-service/internal/model"
)

const (
    TopicContentGenerated = "content.generated"
    EventContentGenerated = "content.generated"
)

// ContentEvent tells downstream consumers that a record was stored.
type ContentEvent struct {
    ID         string        `json:"id"`
    Type       string        `json:"type"`
    Content    model.Content `json:"content"`
    OccurredAt time.Time     `json:"occurredAt"`
}

func NewContentGenerated(c model.Content) ContentEvent {
    return ContentEvent{
        ID:         uuid.New().String(),
        Type:       EventContentGenerated,
        Content:    c,
        OccurredAt: time.Now().UTC(),
    }
}

type Publisher interface {
    Publish(ctx context.Context, event ContentEvent) error
    Close() error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ContentEvent) error { return nil }
func (NopPublisher) Close() error                                { return nil }

// QueuePublisher forwards events onto an in-process Queue topic.
type QueuePublisher struct {
    Queue Queue
    Topic string
}

func (p *QueuePublisher) Publish(_ context.Context, event ContentEvent) error {
    return p.Queue.Publish(p.Topic, event)
}

// Close waits for in-flight deliveries when the queue supports it.
func (p *QueuePublisher) Close() error {
    if d, ok := p.Queue.(interface{ Drain() }); ok {
        d.Drain()
    }
    return nil
}

// StartContentEventSubscriber logs every generated-content event delivered
// on the in-memory queue.
func StartContentEventSubscriber(q Queue, log *zap.SugaredLogger) error {
    return q.Subscribe(TopicContentGenerated, func(payload any) error {
        event, ok := payload.(ContentEvent)
        if !ok {
            log.Warnw("dropping event with unexpected payload", "type", fmt.Sprintf("%T", payload))
            return nil
        }
        metrics.EventsTotal.WithLabelValues("delivered").Inc()
        log.Infow("content event delivered",
            "event_id", event.ID,
            "content_id", event.Content.ID,
            "channel", event.Content.Channel)
        return nil
    })
}

// NewPublisher wires the configured event backend.
func NewPublisher(cfg config.Events, log *zap.SugaredLogger) (Publisher, error) {
    switch cfg.Backend {
    case "", "none":
        return NopPublisher{}, nil
    case "memory":
        q := NewInMemoryQueue(log)
        if err := StartContentEventSubscriber(q, log); err != nil {
            return nil, err
        }
        return &QueuePublisher{Queue: q, Topic: TopicContentGenerated}, nil
    case "amqp":
        return DialAMQP(cfg, log)
    default:
        return nil, fmt.Errorf("unsupported events backend %q", cfg.Backend)
    }
}
