package locker

import (
	"context"
	"patient-registry-service/internal/app/services/shared/redis"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLockService(t *testing.T) {
	ctx := context.Background()
	const key = "registry:test:lock"

	t.Run("Only One Holder", func(t *testing.T) {
		locker := NewLockService(redis.NewMemoryRepository(), zap.NewNop())

		acquired, token, err := locker.TryLock(ctx, key, time.Minute)
		require.NoError(t, err)
		require.True(t, acquired)
		assert.NotEmpty(t, token)

		acquired, _, err = locker.TryLock(ctx, key, time.Minute)
		require.NoError(t, err)
		assert.False(t, acquired)
	})

	t.Run("Unlock Requires Ownership", func(t *testing.T) {
		locker := NewLockService(redis.NewMemoryRepository(), zap.NewNop())
		_, token, err := locker.TryLock(ctx, key, time.Minute)
		require.NoError(t, err)

		assert.Error(t, locker.Unlock(ctx, key, "someone-else"))
		require.NoError(t, locker.Unlock(ctx, key, token))

		acquired, _, err := locker.TryLock(ctx, key, time.Minute)
		require.NoError(t, err)
		assert.True(t, acquired, "lock should be free after unlock")
	})

	t.Run("Unlock Of Missing Lock Is A No-Op", func(t *testing.T) {
		locker := NewLockService(redis.NewMemoryRepository(), zap.NewNop())

		assert.NoError(t, locker.Unlock(ctx, key, "anything"))
	})

	t.Run("Refresh Requires Ownership", func(t *testing.T) {
		locker := NewLockService(redis.NewMemoryRepository(), zap.NewNop())
		_, token, err := locker.TryLock(ctx, key, time.Minute)
		require.NoError(t, err)

		assert.NoError(t, locker.Refresh(ctx, key, token, time.Minute))
		assert.Error(t, locker.Refresh(ctx, key, "someone-else", time.Minute))
	})

	t.Run("Expired Lease Cannot Be Released Or Refreshed By Old Holder", func(t *testing.T) {
		locker := NewLockService(redis.NewMemoryRepository(), zap.NewNop())
		_, stale, err := locker.TryLock(ctx, key, 20*time.Millisecond)
		require.NoError(t, err)

		time.Sleep(40 * time.Millisecond)
		acquired, fresh, err := locker.TryLock(ctx, key, time.Minute)
		require.NoError(t, err)
		require.True(t, acquired)

		assert.Error(t, locker.Unlock(ctx, key, stale))
		assert.Error(t, locker.Refresh(ctx, key, stale, time.Minute))
		assert.NoError(t, locker.Refresh(ctx, key, fresh, time.Minute))
		assert.NoError(t, locker.Unlock(ctx, key, fresh))
	})

	t.Run("Unlock After Expiry Is A No-Op", func(t *testing.T) {
		locker := NewLockService(redis.NewMemoryRepository(), zap.NewNop())
		_, token, err := locker.TryLock(ctx, key, 20*time.Millisecond)
		require.NoError(t, err)

		time.Sleep(40 * time.Millisecond)
		assert.NoError(t, locker.Unlock(ctx, key, token))
	})
}
