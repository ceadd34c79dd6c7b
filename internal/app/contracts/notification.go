package contracts

import (
	"context"
	"patient-registry-service/internal/app/models"
)

type NotificationDispatcher interface {
	Enqueue(ctx context.Context, patient *models.Patient) error
}

type NotificationQueue interface {
	Publish(ctx context.Context, task *models.NotificationTask) error
	FetchN(ctx context.Context, n int) ([]models.QueuedNotification, error)
	Ack(ctx context.Context, deliveryTag uint64) error
	Requeue(ctx context.Context, item models.QueuedNotification) error
	DeadLetter(ctx context.Context, item models.QueuedNotification) error
}

type Mailer interface {
	SendHTMLEmail(ctx context.Context, to []string, subject, body string) error
}

// OrphanArtifactScheduler receives refs whose patient record was never committed.
type OrphanArtifactScheduler interface {
	ScheduleOrphanCleanup(ctx context.Context, ref string) error
}

// NotificationRetryScheduler receives patients whose confirmation could not be enqueued.
type NotificationRetryScheduler interface {
	ScheduleNotificationRetry(ctx context.Context, patientID string) error
}
