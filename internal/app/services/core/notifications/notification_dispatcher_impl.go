package notifications

import (
	"context"
	"patient-registry-service/internal/app/contracts"
	"patient-registry-service/internal/app/models"
	"patient-registry-service/internal/pkg/constvars"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type notificationDispatcher struct {
	Queue contracts.NotificationQueue
	Log   *zap.Logger
}

func NewNotificationDispatcher(queue contracts.NotificationQueue, logger *zap.Logger) contracts.NotificationDispatcher {
	return &notificationDispatcher{
		Queue: queue,
		Log:   logger,
	}
}

// Enqueue snapshots the patient's name and email into a task and returns once the
// queue has accepted it. Delivery happens later in the worker.
func (d *notificationDispatcher) Enqueue(ctx context.Context, patient *models.Patient) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	task := &models.NotificationTask{
		ID:           uuid.New().String(),
		PatientID:    patient.ID,
		PatientName:  patient.Name,
		PatientEmail: patient.Email,
		State:        models.NotificationStatePending,
		EnqueuedAt:   time.Now().UTC(),
	}

	err := d.Queue.Publish(ctx, task)
	if err != nil {
		d.Log.Error("notificationDispatcher.Enqueue error calling Queue.Publish",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patient.ID),
			zap.Error(err),
		)
		return err
	}

	d.Log.Info("notificationDispatcher.Enqueue succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
		zap.String(constvars.LoggingTaskIDKey, task.ID),
	)
	return nil
}
