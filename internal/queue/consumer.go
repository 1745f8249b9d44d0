package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"

    "github.com/streadway/amqp"
    "go.uber.org/zap"

    "github.com/unclebandit/editorial-content-service/internal/config"
    "github.com/unclebandit/editorial-content-service/internal/metrics"
)

const (
    consumerTag = "editorial-worker"
    prefetch    = 8
)

// EventHandler processes one decoded content event.
type EventHandler func(ctx context.Context, event ContentEvent) error

// AMQPConsumer reads content events from the durable queue the publisher
// binds.
type AMQPConsumer struct {
    conn  *amqp.Connection
    ch    *amqp.Channel
    queue string
    log   *zap.SugaredLogger
}

func DialConsumer(cfg config.Events, log *zap.SugaredLogger) (*AMQPConsumer, error) {
    conn, err := amqp.Dial(cfg.URL)
    if err != nil {
        return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
    }
    ch, err := conn.Channel()
    if err != nil {
        conn.Close()
        return nil, fmt.Errorf("open channel: %w", err)
    }
    if err := declareTopology(ch, cfg); err != nil {
        conn.Close()
        return nil, err
    }
    if err := ch.Qos(prefetch, 0, false); err != nil {
        conn.Close()
        return nil, fmt.Errorf("set prefetch: %w", err)
    }
    return &AMQPConsumer{conn: conn, ch: ch, queue: cfg.Queue, log: log}, nil
}

// Run blocks until ctx is cancelled or the broker closes the channel.
func (c *AMQPConsumer) Run(ctx context.Context, handle EventHandler) error {
    deliveries, err := c.ch.Consume(c.queue, consumerTag, false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("register consumer: %w", err)
    }
    c.log.Infow("worker waiting for content events", "queue", c.queue)

    for {
        select {
        case <-ctx.Done():
            return c.ch.Cancel(consumerTag, false)
        case d, ok := <-deliveries:
            if !ok {
                return errors.New("delivery channel closed by broker")
            }
            handleDelivery(ctx, d, handle, c.log)
        }
    }
}

func (c *AMQPConsumer) Close() error {
    err := c.ch.Close()
    if cerr := c.conn.Close(); err == nil {
        err = cerr
    }
    return err
}

// handleDelivery acks handled events. A failing event is requeued once;
// on redelivery it is dropped. Undecodable bodies are rejected outright.
func handleDelivery(ctx context.Context, d amqp.Delivery, handle EventHandler, log *zap.SugaredLogger) {
    var event ContentEvent
    if err := json.Unmarshal(d.Body, &event); err != nil {
        log.Warnw("rejecting malformed event", "message_id", d.MessageId, "err", err)
        metrics.EventsTotal.WithLabelValues("rejected").Inc()
        if err := d.Reject(false); err != nil {
            log.Errorw("reject failed", "message_id", d.MessageId, "err", err)
        }
        return
    }

    if err := handle(ctx, event); err != nil {
        requeue := !d.Redelivered
        log.Warnw("event handler failed", "event_id", event.ID, "requeue", requeue, "err", err)
        metrics.EventsTotal.WithLabelValues("failed").Inc()
        if err := d.Nack(false, requeue); err != nil {
            log.Errorw("nack failed", "event_id", event.ID, "err", err)
        }
        return
    }

    metrics.EventsTotal.WithLabelValues("delivered").Inc()
    if err := d.Ack(false); err != nil {
        log.Errorw("ack failed", "event_id", event.ID, "err", err)
    }
}
