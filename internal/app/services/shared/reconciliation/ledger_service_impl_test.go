package reconciliation

import (
	"context"
	"patient-registry-service/internal/app/services/shared/redis"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLedgerService(t *testing.T) {
	ctx := context.Background()

	t.Run("Orphaned Artifacts Are Deduplicated And Cleared", func(t *testing.T) {
		ledger := NewLedgerService(redis.NewMemoryRepository(), zap.NewNop())
		ref := "patient-images/0b5d6a4e-8f0e-4b7e-9b1e-2f8f0d4c9a11.jpg"

		require.NoError(t, ledger.ScheduleOrphanCleanup(ctx, ref))
		require.NoError(t, ledger.ScheduleOrphanCleanup(ctx, ref))

		refs, err := ledger.OrphanedArtifacts(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{ref}, refs)

		require.NoError(t, ledger.ClearOrphanedArtifact(ctx, ref))
		refs, err = ledger.OrphanedArtifacts(ctx)
		require.NoError(t, err)
		assert.Empty(t, refs)
	})

	t.Run("Pending Notifications Kept Apart From Orphans", func(t *testing.T) {
		ledger := NewLedgerService(redis.NewMemoryRepository(), zap.NewNop())

		require.NoError(t, ledger.ScheduleNotificationRetry(ctx, "patient-1"))

		pending, err := ledger.PendingNotifications(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"patient-1"}, pending)

		orphans, err := ledger.OrphanedArtifacts(ctx)
		require.NoError(t, err)
		assert.Empty(t, orphans)
	})
}
