package locker

import (
	"context"
	"errors"
	"patient-registry-service/internal/app/contracts"
	"patient-registry-service/internal/pkg/constvars"
	"patient-registry-service/internal/pkg/exceptions"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// lockService hands out leases on a key. The token returned by TryLock must be
// presented to release or extend the lease, so a worker whose lease already expired
// cannot release the next holder's lock.
type lockService struct {
	redisRepo contracts.RedisRepository
	Log       *zap.Logger
}

func NewLockService(repo contracts.RedisRepository, logger *zap.Logger) contracts.LockerService {
	return &lockService{
		redisRepo: repo,
		Log:       logger,
	}
}

func (s *lockService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	fields := []zap.Field{
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
	}

	token := uuid.NewString()
	acquired, err := s.redisRepo.TrySetNX(ctx, key, token, expiration)
	if err != nil {
		s.Log.Error("lockService.TryLock error calling redisRepo.TrySetNX", append(fields, zap.Error(err))...)
		return false, "", err
	}
	if !acquired {
		s.Log.Debug("lockService.TryLock lease held elsewhere", fields...)
		return false, "", nil
	}

	s.Log.Info("lockService.TryLock acquired lease",
		append(fields, zap.Duration(constvars.LoggingLockExpirationTimeKey, expiration))...,
	)
	return true, token, nil
}

func (s *lockService) Unlock(ctx context.Context, key, lockValue string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	fields := []zap.Field{
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
	}

	released, err := s.redisRepo.DeleteIfEquals(ctx, key, lockValue)
	if err != nil {
		s.Log.Error("lockService.Unlock error calling redisRepo.DeleteIfEquals", append(fields, zap.Error(err))...)
		return err
	}
	if released {
		s.Log.Info("lockService.Unlock released lease", fields...)
		return nil
	}

	held, err := s.heldByAnother(ctx, key)
	if err != nil {
		s.Log.Error("lockService.Unlock error inspecting lease", append(fields, zap.Error(err))...)
		return err
	}
	if !held {
		// Lease expired before release; nothing left to do.
		return nil
	}

	notOwned := exceptions.ErrRedisUnlock(errors.New(constvars.ErrDevRedisLockNotOwned))
	s.Log.Warn("lockService.Unlock lease belongs to another holder", append(fields, zap.Error(notOwned))...)
	return notOwned
}

func (s *lockService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	fields := []zap.Field{
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.Duration(constvars.LoggingLockExpirationTimeKey, expiration),
	}

	extended, err := s.redisRepo.ExpireIfEquals(ctx, key, lockValue, expiration)
	if err != nil {
		s.Log.Error("lockService.Refresh error calling redisRepo.ExpireIfEquals", append(fields, zap.Error(err))...)
		return err
	}
	if !extended {
		lost := exceptions.ErrRedisRefreshLock(errors.New(constvars.ErrDevRedisLockNotOwned))
		s.Log.Warn("lockService.Refresh lease lost", append(fields, zap.Error(lost))...)
		return lost
	}

	s.Log.Debug("lockService.Refresh extended lease", fields...)
	return nil
}

func (s *lockService) heldByAnother(ctx context.Context, key string) (bool, error) {
	stored, err := s.redisRepo.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return stored != "", nil
}
