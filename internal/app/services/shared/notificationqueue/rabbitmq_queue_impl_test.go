package notificationqueue

import (
	"context"
	"errors"
	"patient-registry-service/internal/app/models"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeConfirmation resolves when the test settles it.
type fakeConfirmation struct {
	done  chan struct{}
	acked bool
}

func newFakeConfirmation() *fakeConfirmation {
	return &fakeConfirmation{done: make(chan struct{})}
}

func (c *fakeConfirmation) settle(acked bool) {
	c.acked = acked
	close(c.done)
}

func (c *fakeConfirmation) WaitContext(ctx context.Context) (bool, error) {
	select {
	case <-c.done:
		return c.acked, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

type publishedMessage struct {
	queueName string
	body      []byte
}

type fakeChannel struct {
	mu         sync.Mutex
	published  []publishedMessage
	publishErr map[string]error
	// confirmations are handed out in publish order; when empty, publishes are acked at once
	confirmations []*fakeConfirmation
	deliveries    []amqp.Delivery
	acked         []uint64
}

func (c *fakeChannel) PublishConfirmed(ctx context.Context, queueName string, msg amqp.Publishing) (publishConfirmation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.publishErr[queueName]; err != nil {
		return nil, err
	}
	c.published = append(c.published, publishedMessage{queueName: queueName, body: msg.Body})
	if len(c.confirmations) == 0 {
		confirmation := newFakeConfirmation()
		confirmation.settle(true)
		return confirmation, nil
	}
	confirmation := c.confirmations[0]
	c.confirmations = c.confirmations[1:]
	return confirmation, nil
}

func (c *fakeChannel) Get(queueName string, autoAck bool) (amqp.Delivery, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.deliveries) == 0 {
		return amqp.Delivery{}, false, nil
	}
	d := c.deliveries[0]
	c.deliveries = c.deliveries[1:]
	return d, true, nil
}

func (c *fakeChannel) Ack(tag uint64, multiple bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.acked = append(c.acked, tag)
	return nil
}

type recordingAcknowledger struct {
	acked   []uint64
	nacked  []uint64
	requeue []bool
}

func (a *recordingAcknowledger) Ack(tag uint64, multiple bool) error {
	a.acked = append(a.acked, tag)
	return nil
}

func (a *recordingAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	a.nacked = append(a.nacked, tag)
	a.requeue = append(a.requeue, requeue)
	return nil
}

func (a *recordingAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func TestRabbitMQQueue_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("Waits For The Broker Confirm", func(t *testing.T) {
		confirmation := newFakeConfirmation()
		ch := &fakeChannel{confirmations: []*fakeConfirmation{confirmation}}
		q := newRabbitMQQueue(ch, zap.NewNop(), "notifications", "notifications_dlq")

		go func() {
			time.Sleep(20 * time.Millisecond)
			confirmation.settle(true)
		}()

		require.NoError(t, q.Publish(ctx, &models.NotificationTask{ID: "task-1"}))
		require.Len(t, ch.published, 1)
		assert.Equal(t, "notifications", ch.published[0].queueName)
	})

	t.Run("Late Confirm Is Not Credited To The Next Message", func(t *testing.T) {
		first := newFakeConfirmation()
		second := newFakeConfirmation()
		ch := &fakeChannel{confirmations: []*fakeConfirmation{first, second}}
		q := newRabbitMQQueue(ch, zap.NewNop(), "notifications", "notifications_dlq")

		timeoutCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		assert.Error(t, q.Publish(timeoutCtx, &models.NotificationTask{ID: "task-1"}))

		// the first message is confirmed only after its publisher gave up
		first.settle(true)
		second.settle(false)

		assert.Error(t, q.Publish(ctx, &models.NotificationTask{ID: "task-2"}),
			"a nacked message must not report success because an earlier message was acked")
	})

	t.Run("Nacked Publish Fails", func(t *testing.T) {
		confirmation := newFakeConfirmation()
		confirmation.settle(false)
		q := newRabbitMQQueue(&fakeChannel{confirmations: []*fakeConfirmation{confirmation}}, zap.NewNop(), "notifications", "notifications_dlq")

		assert.Error(t, q.Publish(ctx, &models.NotificationTask{ID: "task-1"}))
	})
}

func TestRabbitMQQueue_FetchN(t *testing.T) {
	ctx := context.Background()
	validBody, err := json.Marshal(models.NotificationTask{ID: "task-ok", PatientID: "patient-1"})
	require.NoError(t, err)

	t.Run("Undecodable Message Is Parked Then Acked", func(t *testing.T) {
		ack := &recordingAcknowledger{}
		ch := &fakeChannel{deliveries: []amqp.Delivery{
			{Acknowledger: ack, DeliveryTag: 1, Body: []byte("{not json")},
			{Acknowledger: ack, DeliveryTag: 2, Body: validBody},
		}}
		q := newRabbitMQQueue(ch, zap.NewNop(), "notifications", "notifications_dlq")

		items, err := q.FetchN(ctx, 5)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "task-ok", items[0].Task.ID)
		require.Len(t, ch.published, 1)
		assert.Equal(t, "notifications_dlq", ch.published[0].queueName)
		assert.Equal(t, []byte("{not json"), ch.published[0].body)
		assert.Equal(t, []uint64{1}, ack.acked)
	})

	t.Run("Undecodable Message Stays Queued When Dead Letter Publish Fails", func(t *testing.T) {
		ack := &recordingAcknowledger{}
		ch := &fakeChannel{
			publishErr: map[string]error{"notifications_dlq": errors.New("channel closed")},
			deliveries: []amqp.Delivery{
				{Acknowledger: ack, DeliveryTag: 7, Body: []byte("garbage")},
			},
		}
		q := newRabbitMQQueue(ch, zap.NewNop(), "notifications", "notifications_dlq")

		items, err := q.FetchN(ctx, 5)

		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Empty(t, ack.acked)
		assert.Equal(t, []uint64{7}, ack.nacked)
		assert.Equal(t, []bool{true}, ack.requeue)
	})
}

func TestRabbitMQQueue_Requeue(t *testing.T) {
	ctx := context.Background()

	t.Run("Original Is Acked Only After The Copy Is Confirmed", func(t *testing.T) {
		ch := &fakeChannel{publishErr: map[string]error{"notifications": errors.New("channel closed")}}
		q := newRabbitMQQueue(ch, zap.NewNop(), "notifications", "notifications_dlq")

		err := q.Requeue(ctx, models.QueuedNotification{DeliveryTag: 3, Task: models.NotificationTask{ID: "task-1", FailedCount: 1}})

		assert.Error(t, err)
		assert.Empty(t, ch.acked)
	})

	t.Run("Dead Letter Moves The Task", func(t *testing.T) {
		ch := &fakeChannel{}
		q := newRabbitMQQueue(ch, zap.NewNop(), "notifications", "notifications_dlq")

		err := q.DeadLetter(ctx, models.QueuedNotification{DeliveryTag: 4, Task: models.NotificationTask{ID: "task-1", FailedCount: 3}})

		require.NoError(t, err)
		require.Len(t, ch.published, 1)
		assert.Equal(t, "notifications_dlq", ch.published[0].queueName)
		assert.Equal(t, []uint64{4}, ch.acked)
	})
}
