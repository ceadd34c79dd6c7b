package reconciliation

import (
	"context"
	"patient-registry-service/internal/app/contracts"
	"patient-registry-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

type ledgerService struct {
	redisRepo contracts.RedisRepository
	Log       *zap.Logger
}

func NewLedgerService(repo contracts.RedisRepository, logger *zap.Logger) contracts.ReconciliationLedger {
	return &ledgerService{
		redisRepo: repo,
		Log:       logger,
	}
}

func (s *ledgerService) ScheduleOrphanCleanup(ctx context.Context, ref string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("ledgerService.ScheduleOrphanCleanup called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingArtifactRefKey, ref),
	)

	err := s.redisRepo.AddToSet(ctx, constvars.RedisKeyOrphanedArtifacts, ref)
	if err != nil {
		s.Log.Error("ledgerService.ScheduleOrphanCleanup error calling redisRepo.AddToSet",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *ledgerService) ScheduleNotificationRetry(ctx context.Context, patientID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("ledgerService.ScheduleNotificationRetry called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	err := s.redisRepo.AddToSet(ctx, constvars.RedisKeyPendingNotifications, patientID)
	if err != nil {
		s.Log.Error("ledgerService.ScheduleNotificationRetry error calling redisRepo.AddToSet",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *ledgerService) OrphanedArtifacts(ctx context.Context) ([]string, error) {
	return s.redisRepo.GetSetMembers(ctx, constvars.RedisKeyOrphanedArtifacts)
}

func (s *ledgerService) ClearOrphanedArtifact(ctx context.Context, ref string) error {
	return s.redisRepo.RemoveFromSet(ctx, constvars.RedisKeyOrphanedArtifacts, ref)
}

func (s *ledgerService) PendingNotifications(ctx context.Context) ([]string, error) {
	return s.redisRepo.GetSetMembers(ctx, constvars.RedisKeyPendingNotifications)
}

func (s *ledgerService) ClearPendingNotification(ctx context.Context, patientID string) error {
	return s.redisRepo.RemoveFromSet(ctx, constvars.RedisKeyPendingNotifications, patientID)
}
