package notifications

import (
	"context"
	"fmt"
	"patient-registry-service/internal/app/config"
	"patient-registry-service/internal/app/contracts"
	"patient-registry-service/internal/app/models"
	"patient-registry-service/internal/pkg/constvars"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const releaseTimeout = 5 * time.Second

// Worker drains the notification queue and sends the confirmation emails with
// at-least-once semantics. A delivered marker in redis keeps redelivered tasks
// from mailing the same patient twice.
type Worker struct {
	log       *zap.Logger
	cfg       *config.InternalConfig
	locker    contracts.LockerService
	queue     contracts.NotificationQueue
	mailer    contracts.Mailer
	redisRepo contracts.RedisRepository
	limiter   *rate.Limiter
	interval  time.Duration
	stop      chan struct{}
}

func NewWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	lockerSvc contracts.LockerService,
	queue contracts.NotificationQueue,
	mailer contracts.Mailer,
	redisRepo contracts.RedisRepository,
) *Worker {
	interval := time.Duration(cfg.Notification.WorkerIntervalInSeconds) * time.Second
	if interval <= 0 {
		interval = 10 * time.Second
	}

	limit := rate.Inf
	if cfg.Notification.RatePerSecond > 0 {
		limit = rate.Limit(cfg.Notification.RatePerSecond)
	}
	burst := cfg.Notification.RateBurst
	if burst <= 0 {
		burst = 1
	}

	return &Worker{
		log:       log,
		cfg:       cfg,
		locker:    lockerSvc,
		queue:     queue,
		mailer:    mailer,
		redisRepo: redisRepo,
		limiter:   rate.NewLimiter(limit, burst),
		interval:  interval,
		stop:      make(chan struct{}),
	}
}

// Start begins the ticker loop. It returns a stop function that waits for the
// current tick to finish.
func (w *Worker) Start(ctx context.Context) (stop func()) {
	ticker := time.NewTicker(w.interval)
	stopped := make(chan struct{})

	w.log.Info("notification worker started", zap.Duration("interval", w.interval))

	go func() {
		defer close(stopped)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.stop:
				return
			case now := <-ticker.C:
				w.runOnce(ctx, now)
			}
		}
	}()

	return func() {
		close(w.stop)
		<-stopped
	}
}

func (w *Worker) runOnce(ctx context.Context, now time.Time) {
	w.log.Info("notifications.worker.runOnce tick", zap.Time("now", now))

	ttl := w.interval - time.Second
	if ttl < time.Second {
		ttl = time.Second
	}
	acquired, lockVal, err := w.locker.TryLock(ctx, constvars.RedisKeyNotificationWorkerLock, ttl)
	if err != nil {
		w.log.Warn("notifications.worker lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Info("notifications.worker lock not acquired; another instance is running")
		return
	}
	defer func() {
		if err := w.locker.Unlock(context.WithoutCancel(ctx), constvars.RedisKeyNotificationWorkerLock, lockVal); err != nil {
			w.log.Error("notifications.worker unlock failed", zap.Error(err))
		}
	}()

	max := w.cfg.Notification.MaxQueue
	if max <= 0 {
		max = 1
	}
	items, err := w.queue.FetchN(ctx, max)
	if err != nil {
		w.log.Error("notifications.worker queue.FetchN error", zap.Error(err))
		return
	}

	w.log.Info("notifications.worker queue.FetchN success", zap.Int(constvars.LoggingFetchedCountKey, len(items)))

	for _, item := range items {
		w.processItem(ctx, item)
	}
}

func (w *Worker) processItem(ctx context.Context, item models.QueuedNotification) {
	item.Task.State = models.NotificationStateInFlight
	task := item.Task
	markerKey := fmt.Sprintf(constvars.RedisKeyNotificationDelivered, task.PatientID)

	delivered, err := w.redisRepo.Exists(ctx, markerKey)
	if err != nil {
		w.log.Warn("notifications.worker delivered marker lookup failed",
			zap.String(constvars.LoggingTaskIDKey, task.ID),
			zap.Error(err))
	}
	if delivered {
		w.ack(ctx, item)
		w.log.Info("notifications.worker confirmation already delivered; dropped duplicate",
			zap.String(constvars.LoggingTaskIDKey, task.ID),
			zap.String(constvars.LoggingPatientIDKey, task.PatientID))
		return
	}

	if err := w.limiter.Wait(ctx); err != nil {
		w.log.Warn("notifications.worker rate limiter wait aborted; returning task to queue",
			zap.String(constvars.LoggingTaskIDKey, task.ID),
			zap.Error(err))
		w.release(ctx, item)
		return
	}

	body, err := renderPatientConfirmation(task)
	if err != nil {
		w.log.Error("notifications.worker render confirmation failed",
			zap.String(constvars.LoggingTaskIDKey, task.ID),
			zap.Error(err))
		w.retryOrDeadLetter(ctx, item)
		return
	}

	err = w.mailer.SendHTMLEmail(ctx, []string{task.PatientEmail}, constvars.EmailPatientRegisteredSubject, body)
	if err != nil {
		w.log.Warn("notifications.worker send confirmation failed",
			zap.String(constvars.LoggingTaskIDKey, task.ID),
			zap.String(constvars.LoggingPatientIDKey, task.PatientID),
			zap.Int(constvars.LoggingFailedCountKey, task.FailedCount),
			zap.Error(err))
		w.retryOrDeadLetter(ctx, item)
		return
	}

	markerTTL := time.Duration(w.cfg.Notification.DeliveredMarkerTTLInHours) * time.Hour
	if err := w.redisRepo.Set(ctx, markerKey, task.ID, markerTTL); err != nil {
		w.log.Warn("notifications.worker set delivered marker failed",
			zap.String(constvars.LoggingTaskIDKey, task.ID),
			zap.Error(err))
	}
	w.ack(ctx, item)

	w.log.Info("notifications.worker confirmation delivered",
		zap.String(constvars.LoggingTaskIDKey, task.ID),
		zap.String(constvars.LoggingPatientIDKey, task.PatientID),
		zap.String(constvars.LoggingTaskStateKey, string(models.NotificationStateDelivered)))
}

// release hands an unattempted task back to the queue unchanged. ctx is usually done
// by then, so the requeue runs on a detached, bounded context.
func (w *Worker) release(ctx context.Context, item models.QueuedNotification) {
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()

	item.Task.State = models.NotificationStatePending
	if err := w.queue.Requeue(releaseCtx, item); err != nil {
		w.log.Error("notifications.worker queue.Requeue error releasing task",
			zap.String(constvars.LoggingTaskIDKey, item.Task.ID),
			zap.Error(err))
	}
}

// retryOrDeadLetter counts the failure and returns the task to the tail of the
// queue, or parks it in the dead letter queue once the attempts are used up.
func (w *Worker) retryOrDeadLetter(ctx context.Context, item models.QueuedNotification) {
	item.Task.FailedCount++

	maxAttempts := w.cfg.Notification.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	if item.Task.FailedCount >= maxAttempts {
		item.Task.State = models.NotificationStateFailedTerminal
		if err := w.queue.DeadLetter(ctx, item); err != nil {
			w.log.Error("notifications.worker dead letter failed",
				zap.String(constvars.LoggingTaskIDKey, item.Task.ID),
				zap.Error(err))
			return
		}
		w.log.Warn("notifications.worker moved task to dead letter queue",
			zap.String(constvars.LoggingTaskIDKey, item.Task.ID),
			zap.String(constvars.LoggingPatientIDKey, item.Task.PatientID),
			zap.Int(constvars.LoggingFailedCountKey, item.Task.FailedCount),
			zap.String(constvars.LoggingTaskStateKey, string(item.Task.State)))
		return
	}

	item.Task.State = models.NotificationStatePending
	if err := w.queue.Requeue(ctx, item); err != nil {
		w.log.Error("notifications.worker requeue failed",
			zap.String(constvars.LoggingTaskIDKey, item.Task.ID),
			zap.Error(err))
		return
	}
	w.log.Info("notifications.worker retryable failure; incremented failed count and requeued",
		zap.String(constvars.LoggingTaskIDKey, item.Task.ID),
		zap.Int(constvars.LoggingFailedCountKey, item.Task.FailedCount))
}

func (w *Worker) ack(ctx context.Context, item models.QueuedNotification) {
	if err := w.queue.Ack(ctx, item.DeliveryTag); err != nil {
		w.log.Error("notifications.worker ack failed",
			zap.String(constvars.LoggingTaskIDKey, item.Task.ID),
			zap.Error(err))
	}
}
