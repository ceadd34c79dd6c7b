package notificationqueue

import (
	"context"
	"patient-registry-service/internal/app/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func publishTasks(t *testing.T, q *MemoryQueue, ids ...string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, q.Publish(context.Background(), &models.NotificationTask{ID: id, State: models.NotificationStatePending}))
	}
}

func TestMemoryQueue_FetchN(t *testing.T) {
	ctx := context.Background()

	t.Run("Preserves FIFO Order", func(t *testing.T) {
		q := NewMemoryQueue()
		publishTasks(t, q, "a", "b", "c")

		items, err := q.FetchN(ctx, 2)

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "a", items[0].Task.ID)
		assert.Equal(t, "b", items[1].Task.ID)
		assert.Equal(t, 2, q.InFlight())
		assert.Len(t, q.Pending(), 1)
	})

	t.Run("Empty Queue", func(t *testing.T) {
		q := NewMemoryQueue()

		items, err := q.FetchN(ctx, 5)

		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestMemoryQueue_Settlement(t *testing.T) {
	ctx := context.Background()

	t.Run("Ack Removes In Flight Task", func(t *testing.T) {
		q := NewMemoryQueue()
		publishTasks(t, q, "a")
		items, _ := q.FetchN(ctx, 1)

		require.NoError(t, q.Ack(ctx, items[0].DeliveryTag))

		assert.Zero(t, q.InFlight())
		assert.Error(t, q.Ack(ctx, items[0].DeliveryTag), "second ack should fail")
	})

	t.Run("Requeue Appends To Tail", func(t *testing.T) {
		q := NewMemoryQueue()
		publishTasks(t, q, "a", "b")
		items, _ := q.FetchN(ctx, 1)
		items[0].Task.FailedCount++

		require.NoError(t, q.Requeue(ctx, items[0]))

		pending := q.Pending()
		require.Len(t, pending, 2)
		assert.Equal(t, "b", pending[0].ID)
		assert.Equal(t, "a", pending[1].ID)
		assert.Equal(t, 1, pending[1].FailedCount)
	})

	t.Run("Dead Letter Parks Task", func(t *testing.T) {
		q := NewMemoryQueue()
		publishTasks(t, q, "a")
		items, _ := q.FetchN(ctx, 1)

		require.NoError(t, q.DeadLetter(ctx, items[0]))

		assert.Empty(t, q.Pending())
		require.Len(t, q.DeadLetters(), 1)
		assert.Equal(t, "a", q.DeadLetters()[0].ID)
	})
}
