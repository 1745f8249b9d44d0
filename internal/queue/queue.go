package queue

import (
    "fmt"
    "sync"
    "time"

    "go.uber.org/zap"
)

// Queue interface
type Queue interface {
    Publish(topic string, payload any) error
    Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue fans each message out to the topic's subscribers and
// redelivers to a failing subscriber a bounded number of times.
type InMemoryQueue struct {
    mu         sync.Mutex
    handlers   map[string][]func(payload any) error
    maxRetries int
    backoff    time.Duration
    wg         sync.WaitGroup
    log        *zap.SugaredLogger
}

func NewInMemoryQueue(log *zap.SugaredLogger) *InMemoryQueue {
    return &InMemoryQueue{
        handlers:   make(map[string][]func(payload any) error),
        maxRetries: 3,
        backoff:    500 * time.Millisecond,
        log:        log,
    }
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
    Topic      string
    Payload    any
    RetryCount int
    MaxRetries int
}

// Publish hands the message to every subscriber asynchronously.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
    q.mu.Lock()
    handlers := q.handlers[topic]
    q.mu.Unlock()

    if len(handlers) == 0 {
        return fmt.Errorf("no subscribers for topic %s", topic)
    }

    for _, handler := range handlers {
        job := JobPayload{Topic: topic, Payload: payload, MaxRetries: q.maxRetries}
        q.wg.Add(1)
        go q.processJob(handler, job)
    }
    return nil
}

func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
    defer q.wg.Done()

    for {
        err := handler(job.Payload)
        if err == nil {
            return
        }

        job.RetryCount++
        if job.RetryCount > job.MaxRetries {
            q.log.Errorw("job permanently failed", "topic", job.Topic, "attempts", job.RetryCount, "err", err)
            return
        }
        q.log.Warnw("job failed, retrying", "topic", job.Topic, "attempt", job.RetryCount, "max", job.MaxRetries, "err", err)

        time.Sleep(time.Duration(job.RetryCount) * q.backoff)
    }
}

func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
    q.mu.Lock()
    defer q.mu.Unlock()

    q.handlers[topic] = append(q.handlers[topic], handler)
    return nil
}

// Drain blocks until every in-flight job has finished.
func (q *InMemoryQueue) Drain() {
    q.wg.Wait()
}
