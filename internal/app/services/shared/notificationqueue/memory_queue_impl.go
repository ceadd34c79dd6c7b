package notificationqueue

import (
	"context"
	"patient-registry-service/internal/app/models"
	"patient-registry-service/internal/pkg/exceptions"
	"sync"
)

// MemoryQueue is a process-local FIFO with the same ack/requeue contract as the broker queue.
// Tasks fetched but never acked stay in flight until the process exits.
type MemoryQueue struct {
	mu          sync.Mutex
	ready       []models.NotificationTask
	inFlight    map[uint64]models.NotificationTask
	deadLetters []models.NotificationTask
	nextTag     uint64
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{
		inFlight: make(map[uint64]models.NotificationTask),
	}
}

func (q *MemoryQueue) Publish(ctx context.Context, task *models.NotificationTask) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ready = append(q.ready, *task)
	return nil
}

func (q *MemoryQueue) FetchN(ctx context.Context, n int) ([]models.QueuedNotification, error) {
	if n <= 0 {
		n = 1
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	if n > len(q.ready) {
		n = len(q.ready)
	}
	items := make([]models.QueuedNotification, 0, n)
	for _, task := range q.ready[:n] {
		q.nextTag++
		q.inFlight[q.nextTag] = task
		items = append(items, models.QueuedNotification{DeliveryTag: q.nextTag, Task: task})
	}
	q.ready = q.ready[n:]
	return items, nil
}

func (q *MemoryQueue) Ack(ctx context.Context, deliveryTag uint64) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.inFlight[deliveryTag]; !ok {
		return exceptions.ErrQueueDeliveryAbsent(deliveryTag)
	}
	delete(q.inFlight, deliveryTag)
	return nil
}

func (q *MemoryQueue) Requeue(ctx context.Context, item models.QueuedNotification) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.inFlight[item.DeliveryTag]; !ok {
		return exceptions.ErrQueueDeliveryAbsent(item.DeliveryTag)
	}
	delete(q.inFlight, item.DeliveryTag)
	q.ready = append(q.ready, item.Task)
	return nil
}

func (q *MemoryQueue) DeadLetter(ctx context.Context, item models.QueuedNotification) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.inFlight[item.DeliveryTag]; !ok {
		return exceptions.ErrQueueDeliveryAbsent(item.DeliveryTag)
	}
	delete(q.inFlight, item.DeliveryTag)
	q.deadLetters = append(q.deadLetters, item.Task)
	return nil
}

// Pending returns a copy of the tasks waiting to be fetched.
func (q *MemoryQueue) Pending() []models.NotificationTask {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]models.NotificationTask(nil), q.ready...)
}

func (q *MemoryQueue) DeadLetters() []models.NotificationTask {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]models.NotificationTask(nil), q.deadLetters...)
}

func (q *MemoryQueue) InFlight() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.inFlight)
}
