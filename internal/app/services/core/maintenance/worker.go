package maintenance

import (
	"context"
	"patient-registry-service/internal/app/config"
	"patient-registry-service/internal/app/contracts"
	"patient-registry-service/internal/pkg/constvars"
	"patient-registry-service/internal/pkg/exceptions"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	defaultCronSpec = "@every 5m"
	leaderLockTTL   = 2 * time.Minute
)

// Worker settles what the registration path left to the reconciliation ledger:
// artifacts whose patient was never committed, and patients whose confirmation
// never reached the queue.
type Worker struct {
	log         *zap.Logger
	cfg         *config.InternalConfig
	locker      contracts.LockerService
	ledger      contracts.ReconciliationLedger
	store       contracts.ArtifactStore
	patientRepo contracts.PatientRepository
	dispatcher  contracts.NotificationDispatcher
	cron        *cron.Cron
	runCtx      context.Context
	cancel      context.CancelFunc
}

func NewWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	lockerSvc contracts.LockerService,
	ledger contracts.ReconciliationLedger,
	store contracts.ArtifactStore,
	patientRepo contracts.PatientRepository,
	dispatcher contracts.NotificationDispatcher,
) *Worker {
	return &Worker{
		log:         log,
		cfg:         cfg,
		locker:      lockerSvc,
		ledger:      ledger,
		store:       store,
		patientRepo: patientRepo,
		dispatcher:  dispatcher,
	}
}

func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.Maintenance.CronSpec
	if spec == "" {
		spec = defaultCronSpec
	}
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("maintenance.worker: invalid cron spec; falling back to default",
			zap.String("cron_spec", spec),
			zap.Error(err))
		c = cron.New()
		_, _ = c.AddFunc(defaultCronSpec, func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
	w.log.Info("maintenance worker started", zap.String("cron_spec", spec))
}

// Stop cancels the running pass and waits for it to return.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeyMaintenanceWorkerLock, leaderLockTTL)
	if err != nil {
		w.log.Warn("maintenance.worker: leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Info("maintenance.worker: leader lock not acquired; another instance is running")
		return
	}
	defer func() {
		if err := w.locker.Unlock(context.WithoutCancel(ctx), constvars.RedisKeyMaintenanceWorkerLock, token); err != nil {
			w.log.Error("maintenance.worker: unlock failed", zap.Error(err))
		}
	}()

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go func() {
		tick := time.NewTicker(leaderLockTTL / 2)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := w.locker.Refresh(refreshCtx, constvars.RedisKeyMaintenanceWorkerLock, token, leaderLockTTL); err != nil {
					w.log.Warn("maintenance.worker: failed to refresh leader lock TTL", zap.Error(err))
				}
			}
		}
	}()

	w.collectOrphanedArtifacts(ctx)
	w.retryPendingNotifications(ctx)
}

// collectOrphanedArtifacts deletes every scheduled artifact that no patient
// references. A ref that turns out to be in use is only dropped from the ledger.
func (w *Worker) collectOrphanedArtifacts(ctx context.Context) {
	refs, err := w.ledger.OrphanedArtifacts(ctx)
	if err != nil {
		w.log.Warn("maintenance.worker: list orphaned artifacts failed", zap.Error(err))
		return
	}

	for _, ref := range refs {
		if ctx.Err() != nil {
			return
		}

		inUse, err := w.patientRepo.ExistsByImageRef(ctx, ref)
		if err != nil {
			w.log.Warn("maintenance.worker: artifact usage check failed",
				zap.String(constvars.LoggingArtifactRefKey, ref),
				zap.Error(err))
			continue
		}
		if !inUse {
			if err := w.store.Delete(ctx, ref); err != nil && !exceptions.IsKind(err, exceptions.KindNotFound) {
				w.log.Warn("maintenance.worker: delete orphaned artifact failed",
					zap.String(constvars.LoggingArtifactRefKey, ref),
					zap.Error(err))
				continue
			}
		}

		if err := w.ledger.ClearOrphanedArtifact(ctx, ref); err != nil {
			w.log.Warn("maintenance.worker: clear orphaned artifact failed",
				zap.String(constvars.LoggingArtifactRefKey, ref),
				zap.Error(err))
			continue
		}
		w.log.Info("maintenance.worker: orphaned artifact settled",
			zap.String(constvars.LoggingArtifactRefKey, ref),
			zap.Bool("deleted", !inUse))
	}
}

func (w *Worker) retryPendingNotifications(ctx context.Context) {
	patientIDs, err := w.ledger.PendingNotifications(ctx)
	if err != nil {
		w.log.Warn("maintenance.worker: list pending notifications failed", zap.Error(err))
		return
	}

	for _, patientID := range patientIDs {
		if ctx.Err() != nil {
			return
		}

		patient, err := w.patientRepo.Get(ctx, patientID)
		if err != nil {
			w.log.Warn("maintenance.worker: reload patient failed",
				zap.String(constvars.LoggingPatientIDKey, patientID),
				zap.Error(err))
			continue
		}
		if patient != nil {
			if err := w.dispatcher.Enqueue(ctx, patient); err != nil {
				w.log.Warn("maintenance.worker: re-enqueue confirmation failed",
					zap.String(constvars.LoggingPatientIDKey, patientID),
					zap.Error(err))
				continue
			}
		}

		if err := w.ledger.ClearPendingNotification(ctx, patientID); err != nil {
			w.log.Warn("maintenance.worker: clear pending notification failed",
				zap.String(constvars.LoggingPatientIDKey, patientID),
				zap.Error(err))
			continue
		}
		w.log.Info("maintenance.worker: pending notification settled",
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Bool("enqueued", patient != nil))
	}
}
