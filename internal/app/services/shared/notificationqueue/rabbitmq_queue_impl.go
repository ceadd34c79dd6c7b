package notificationqueue

import (
	"context"
	"errors"
	"patient-registry-service/internal/app/contracts"
	"patient-registry-service/internal/app/models"
	"patient-registry-service/internal/pkg/constvars"
	"patient-registry-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// publishConfirmation is the broker's answer for one published message.
type publishConfirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

type channel interface {
	PublishConfirmed(ctx context.Context, queueName string, msg amqp.Publishing) (publishConfirmation, error)
	Get(queueName string, autoAck bool) (amqp.Delivery, bool, error)
	Ack(tag uint64, multiple bool) error
}

// confirmChannel is an amqp channel in confirm mode. Every publish gets its own
// deferred confirmation, so a late confirm can never be mistaken for another message's.
type confirmChannel struct {
	*amqp.Channel
}

func (c confirmChannel) PublishConfirmed(ctx context.Context, queueName string, msg amqp.Publishing) (publishConfirmation, error) {
	confirmation, err := c.PublishWithDeferredConfirmWithContext(ctx, "", queueName, false, false, msg)
	if err != nil {
		return nil, err
	}
	if confirmation == nil {
		return nil, errors.New(constvars.ErrDevRabbitMQNotConfirm)
	}
	return confirmation, nil
}

// rabbitMQQueue keeps confirmation tasks in a durable queue with a sibling dead-letter queue.
// Publishing waits for the broker confirm, so a nil error means the task is on disk.
type rabbitMQQueue struct {
	ch             channel
	log            *zap.Logger
	queueName      string
	deadLetterName string
}

// NewRabbitMQQueue declares both durable queues, enables confirms, and sets QoS.
func NewRabbitMQQueue(conn *amqp.Connection, log *zap.Logger, queueName, deadLetterName string, prefetch int) (contracts.NotificationQueue, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	)
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		deadLetterName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return newRabbitMQQueue(confirmChannel{Channel: ch}, log, queueName, deadLetterName), nil
}

func newRabbitMQQueue(ch channel, log *zap.Logger, queueName, deadLetterName string) *rabbitMQQueue {
	return &rabbitMQQueue{
		ch:             ch,
		log:            log,
		queueName:      queueName,
		deadLetterName: deadLetterName,
	}
}

func (q *rabbitMQQueue) Publish(ctx context.Context, task *models.NotificationTask) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	q.log.Info("rabbitMQQueue.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTaskIDKey, task.ID),
	)

	body, err := json.Marshal(task)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return q.publishRaw(ctx, q.queueName, body)
}

// FetchN retrieves up to n messages using basic.get without auto-ack.
func (q *rabbitMQQueue) FetchN(ctx context.Context, n int) ([]models.QueuedNotification, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	q.log.Info("rabbitMQQueue.FetchN called", zap.String(constvars.LoggingRequestIDKey, requestID))

	if n <= 0 {
		n = 1
	}
	items := make([]models.QueuedNotification, 0, n)

	for i := 0; i < n; i++ {
		d, ok, err := q.ch.Get(q.queueName, false)
		if err != nil {
			return nil, exceptions.ErrRabbitMQFetchMessage(err, q.queueName)
		}
		if !ok {
			break
		}
		var task models.NotificationTask
		if err := json.Unmarshal(d.Body, &task); err != nil {
			// poison message, park it instead of looping on it
			q.log.Warn("rabbitMQQueue.FetchN moving undecodable message to dead letter queue",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			if err := q.publishRaw(ctx, q.deadLetterName, d.Body); err != nil {
				q.log.Error("rabbitMQQueue.FetchN error parking undecodable message, returning it to the queue",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Error(err),
				)
				if nackErr := d.Nack(false, true); nackErr != nil {
					q.log.Error("rabbitMQQueue.FetchN error calling Nack",
						zap.String(constvars.LoggingRequestIDKey, requestID),
						zap.Error(nackErr),
					)
				}
				// basic.get would hand the same message straight back
				break
			}
			if err := d.Ack(false); err != nil {
				q.log.Error("rabbitMQQueue.FetchN error acking parked message",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Error(err),
				)
			}
			continue
		}
		items = append(items, models.QueuedNotification{DeliveryTag: d.DeliveryTag, Task: task})
	}

	q.log.Info("rabbitMQQueue.FetchN succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingFetchedCountKey, len(items)),
	)
	return items, nil
}

func (q *rabbitMQQueue) Ack(ctx context.Context, deliveryTag uint64) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	q.log.Info("rabbitMQQueue.Ack called", zap.String(constvars.LoggingRequestIDKey, requestID))
	if err := q.ch.Ack(deliveryTag, false); err != nil {
		return exceptions.ErrRabbitMQAckMessage(err)
	}
	return nil
}

// Requeue publishes the updated task to the tail of the queue, then acks the original delivery.
func (q *rabbitMQQueue) Requeue(ctx context.Context, item models.QueuedNotification) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	q.log.Info("rabbitMQQueue.Requeue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTaskIDKey, item.Task.ID),
		zap.Int(constvars.LoggingFailedCountKey, item.Task.FailedCount),
	)
	return q.moveTo(ctx, q.queueName, item)
}

func (q *rabbitMQQueue) DeadLetter(ctx context.Context, item models.QueuedNotification) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	q.log.Info("rabbitMQQueue.DeadLetter called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTaskIDKey, item.Task.ID),
		zap.Int(constvars.LoggingFailedCountKey, item.Task.FailedCount),
	)
	return q.moveTo(ctx, q.deadLetterName, item)
}

func (q *rabbitMQQueue) moveTo(ctx context.Context, queueName string, item models.QueuedNotification) error {
	body, err := json.Marshal(item.Task)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	if err := q.publishRaw(ctx, queueName, body); err != nil {
		return err
	}
	if err := q.ch.Ack(item.DeliveryTag, false); err != nil {
		return exceptions.ErrRabbitMQAckMessage(err)
	}
	return nil
}

func (q *rabbitMQQueue) publishRaw(ctx context.Context, queueName string, body []byte) error {
	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}
	confirmation, err := q.ch.PublishConfirmed(ctx, queueName, msg)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, queueName)
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, queueName)
	}
	if !acked {
		return exceptions.ErrRabbitMQPublishMessage(errors.New(constvars.ErrDevRabbitMQNotConfirm), queueName)
	}
	return nil
}
