package queue

import (
    "context"
    "encoding/json"
    "fmt"
    "sync"

    "github.com/streadway/amqp"
    "go.uber.org/zap"

    "github.com/unclebandit/editorial-content-service/internal/config"
)

// amqpChannel is the part of *amqp.Channel the publisher uses.
type amqpChannel interface {
    ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
    QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
    QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
    Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
    Close() error
}

// AMQPPublisher publishes content events as persistent JSON messages on a
// durable direct exchange.
type AMQPPublisher struct {
    mu         sync.Mutex
    conn       *amqp.Connection
    ch         amqpChannel
    exchange   string
    routingKey string
    log        *zap.SugaredLogger
}

func DialAMQP(cfg config.Events, log *zap.SugaredLogger) (*AMQPPublisher, error) {
    conn, err := amqp.Dial(cfg.URL)
    if err != nil {
        return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
    }
    ch, err := conn.Channel()
    if err != nil {
        conn.Close()
        return nil, fmt.Errorf("open channel: %w", err)
    }

    p, err := newAMQPPublisher(ch, cfg, log)
    if err != nil {
        conn.Close()
        return nil, err
    }
    p.conn = conn
    log.Infow("AMQP publisher ready", "exchange", cfg.Exchange, "queue", cfg.Queue)
    return p, nil
}

// declareTopology makes sure the exchange, the queue and their binding
// exist. Publisher and consumer both call it, so either may start first.
func declareTopology(ch amqpChannel, cfg config.Events) error {
    if err := ch.ExchangeDeclare(cfg.Exchange, "direct", true, false, false, false, nil); err != nil {
        return fmt.Errorf("declare exchange %s: %w", cfg.Exchange, err)
    }
    if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("declare queue %s: %w", cfg.Queue, err)
    }
    if err := ch.QueueBind(cfg.Queue, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
        return fmt.Errorf("bind queue %s: %w", cfg.Queue, err)
    }
    return nil
}

func newAMQPPublisher(ch amqpChannel, cfg config.Events, log *zap.SugaredLogger) (*AMQPPublisher, error) {
    if err := declareTopology(ch, cfg); err != nil {
        return nil, err
    }
    return &AMQPPublisher{
        ch:         ch,
        exchange:   cfg.Exchange,
        routingKey: cfg.RoutingKey,
        log:        log,
    }, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event ContentEvent) error {
    if err := ctx.Err(); err != nil {
        return err
    }
    body, err := json.Marshal(event)
    if err != nil {
        return fmt.Errorf("marshal event: %w", err)
    }

    p.mu.Lock()
    defer p.mu.Unlock()

    return p.ch.Publish(p.exchange, p.routingKey, false, false, amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        MessageId:    event.ID,
        Type:         event.Type,
        Timestamp:    event.OccurredAt,
        Body:         body,
    })
}

func (p *AMQPPublisher) Close() error {
    p.mu.Lock()
    defer p.mu.Unlock()

    err := p.ch.Close()
    if p.conn != nil {
        if cerr := p.conn.Close(); err == nil {
            err = cerr
        }
    }
    return err
}
