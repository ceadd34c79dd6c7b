package components

import (
	"context"
	"fmt"
	"patient-registry-service/internal/app/config"
	"patient-registry-service/internal/app/contracts"
	"patient-registry-service/internal/app/delivery/http/routers"
	"patient-registry-service/internal/app/services/core/artifacts"
	"patient-registry-service/internal/app/services/core/notifications"
	"patient-registry-service/internal/app/services/core/patients"
	"patient-registry-service/internal/app/services/shared/locker"
	"patient-registry-service/internal/app/services/shared/notificationqueue"
	"patient-registry-service/internal/app/services/shared/reconciliation"
	"patient-registry-service/internal/app/services/shared/redis"
	"patient-registry-service/internal/app/services/shared/storage"
	"patient-registry-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// Components is the registration pipeline assembled from the connections held by
// a Bootstrap. Backends are picked by the *_DRIVER settings.
type Components struct {
	RedisRepository        contracts.RedisRepository
	Locker                 contracts.LockerService
	Ledger                 contracts.ReconciliationLedger
	ArtifactStore          contracts.ArtifactStore
	URLSigner              contracts.ArtifactURLSigner
	PatientRepository      contracts.PatientRepository
	NotificationQueue      contracts.NotificationQueue
	NotificationDispatcher contracts.NotificationDispatcher
	PatientUsecase         contracts.PatientUsecase
	ArtifactUsecase        contracts.ArtifactUsecase
}

func New(ctx context.Context, b *config.Bootstrap) (*Components, error) {
	log := b.Logger
	cfg := b.InternalConfig
	c := &Components{}

	if b.Redis != nil {
		c.RedisRepository = redis.NewRedisRepository(b.Redis)
	} else {
		log.Warn("redis client not configured; locks and reconciliation ledger are process local")
		c.RedisRepository = redis.NewMemoryRepository()
	}
	c.Locker = locker.NewLockService(c.RedisRepository, log)
	c.Ledger = reconciliation.NewLedgerService(c.RedisRepository, log)

	var err error
	if c.ArtifactStore, err = newArtifactStore(b); err != nil {
		return nil, err
	}
	if c.PatientRepository, err = newPatientRepository(ctx, b); err != nil {
		return nil, err
	}
	if c.NotificationQueue, err = newNotificationQueue(b); err != nil {
		return nil, err
	}

	c.URLSigner = storage.NewJWTURLSigner(cfg.JWT.ArtifactLinkSecret, routers.ArtifactBaseURL(cfg))
	c.NotificationDispatcher = notifications.NewNotificationDispatcher(c.NotificationQueue, log)

	validator := patients.NewSubmissionValidator(patients.ValidationRules{
		EmailAllowedDomains: cfg.App.EmailAllowedDomains,
		PhoneCountryCodes:   cfg.App.PhoneCountryCodes,
		ImageMaxSizeInMB:    cfg.App.PatientImageMaxUploadSizeInMB,
	})
	c.PatientUsecase = patients.NewPatientUsecase(
		validator,
		c.ArtifactStore,
		c.PatientRepository,
		c.NotificationDispatcher,
		c.Ledger,
		c.Ledger,
		c.URLSigner,
		cfg,
		log,
	)
	c.ArtifactUsecase = artifacts.NewArtifactUsecase(c.ArtifactStore, c.URLSigner, log)

	log.Info("registration pipeline assembled",
		zap.String("patient_repository_driver", cfg.App.PatientRepositoryDriver),
		zap.String("artifact_storage_driver", cfg.App.ArtifactStorageDriver),
		zap.String("notification_queue_driver", cfg.App.NotificationQueueDriver),
	)
	return c, nil
}

func newArtifactStore(b *config.Bootstrap) (contracts.ArtifactStore, error) {
	switch b.InternalConfig.App.ArtifactStorageDriver {
	case constvars.DriverMinio:
		if b.Minio == nil {
			return nil, fmt.Errorf("artifact storage driver %q requires a minio client", constvars.DriverMinio)
		}
		return storage.NewMinioStorage(b.Minio, b.InternalConfig.Minio.BucketName, b.Logger), nil
	case constvars.DriverFilesystem:
		return storage.NewFilesystemStorage(b.InternalConfig.Storage.FilesystemRoot, b.Logger), nil
	}
	return nil, fmt.Errorf("unknown artifact storage driver %q", b.InternalConfig.App.ArtifactStorageDriver)
}

func newPatientRepository(ctx context.Context, b *config.Bootstrap) (contracts.PatientRepository, error) {
	switch b.InternalConfig.App.PatientRepositoryDriver {
	case constvars.DriverMongo:
		if b.MongoDB == nil {
			return nil, fmt.Errorf("patient repository driver %q requires a mongo database", constvars.DriverMongo)
		}
		if err := patients.EnsurePatientIndexes(ctx, b.MongoDB); err != nil {
			return nil, fmt.Errorf("ensure patient indexes: %w", err)
		}
		return patients.NewPatientMongoRepository(b.MongoDB, b.Logger), nil
	case constvars.DriverPostgres:
		if b.Postgres == nil {
			return nil, fmt.Errorf("patient repository driver %q requires a postgres database", constvars.DriverPostgres)
		}
		return patients.NewPatientPostgresRepository(b.Postgres, b.Logger), nil
	case constvars.DriverMemory:
		return patients.NewPatientMemoryRepository(), nil
	}
	return nil, fmt.Errorf("unknown patient repository driver %q", b.InternalConfig.App.PatientRepositoryDriver)
}

func newNotificationQueue(b *config.Bootstrap) (contracts.NotificationQueue, error) {
	switch b.InternalConfig.App.NotificationQueueDriver {
	case constvars.DriverRabbitMQ:
		if b.RabbitMQ == nil {
			return nil, fmt.Errorf("notification queue driver %q requires a rabbitmq connection", constvars.DriverRabbitMQ)
		}
		return notificationqueue.NewRabbitMQQueue(
			b.RabbitMQ,
			b.Logger,
			b.InternalConfig.RabbitMQ.NotificationQueue,
			b.InternalConfig.RabbitMQ.NotificationDeadLetterQueue,
			b.InternalConfig.Notification.MaxQueue,
		)
	case constvars.DriverMemory:
		return notificationqueue.NewMemoryQueue(), nil
	}
	return nil, fmt.Errorf("unknown notification queue driver %q", b.InternalConfig.App.NotificationQueueDriver)
}
