package contracts

import "context"

// ReconciliationLedger records work the request path could not finish, for the maintenance worker.
type ReconciliationLedger interface {
	OrphanArtifactScheduler
	NotificationRetryScheduler
	OrphanedArtifacts(ctx context.Context) ([]string, error)
	ClearOrphanedArtifact(ctx context.Context, ref string) error
	PendingNotifications(ctx context.Context) ([]string, error)
	ClearPendingNotification(ctx context.Context, patientID string) error
}
