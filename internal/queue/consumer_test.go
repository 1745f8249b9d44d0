package queue

import (
    "context"
    "encoding/json"
    "errors"
    "testing"

    "github.com/streadway/amqp"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/unclebandit/editorial-content-service/internal/logger"
    "github.com/unclebandit/editorial-content-service/internal/model"
)

type ackRecorder struct {
    acked, rejected bool
    nacked          bool
    requeued        bool
}

func (a *ackRecorder) Ack(tag uint64, multiple bool) error {
    a.acked = true
    return nil
}

func (a *ackRecorder) Nack(tag uint64, multiple, requeue bool) error {
    a.nacked, a.requeued = true, requeue
    return nil
}

func (a *ackRecorder) Reject(tag uint64, requeue bool) error {
    a.rejected = true
    return nil
}

func delivery(t *testing.T, ack *ackRecorder, redelivered bool) amqp.Delivery {
    t.Helper()
    body, err := json.Marshal(NewContentGenerated(model.Content{ID: 3, Channel: model.ChannelTikTok}))
    require.NoError(t, err)
    return amqp.Delivery{Acknowledger: ack, Body: body, Redelivered: redelivered}
}

func TestHandleDeliveryAcksHandledEvent(t *testing.T) {
    ack := &ackRecorder{}
    var got ContentEvent

    handleDelivery(context.Background(), delivery(t, ack, false), func(_ context.Context, e ContentEvent) error {
        got = e
        return nil
    }, logger.Nop())

    assert.True(t, ack.acked)
    assert.Equal(t, int64(3), got.Content.ID)
    assert.Equal(t, EventContentGenerated, got.Type)
}

func TestHandleDeliveryRequeuesOnce(t *testing.T) {
    failing := func(context.Context, ContentEvent) error { return errors.New("downstream busy") }

    first := &ackRecorder{}
    handleDelivery(context.Background(), delivery(t, first, false), failing, logger.Nop())
    assert.True(t, first.nacked)
    assert.True(t, first.requeued)

    second := &ackRecorder{}
    handleDelivery(context.Background(), delivery(t, second, true), failing, logger.Nop())
    assert.True(t, second.nacked)
    assert.False(t, second.requeued)
}

func TestHandleDeliveryRejectsGarbage(t *testing.T) {
    ack := &ackRecorder{}
    called := false

    handleDelivery(context.Background(), amqp.Delivery{Acknowledger: ack, Body: []byte("{not json")},
        func(context.Context, ContentEvent) error { called = true; return nil }, logger.Nop())

    assert.True(t, ack.rejected)
    assert.False(t, called)
}
