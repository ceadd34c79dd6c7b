package components

import (
	"context"
	"patient-registry-service/internal/app/config"
	"patient-registry-service/internal/app/services/shared/notificationqueue"
	"patient-registry-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func memoryBootstrap(t *testing.T) *config.Bootstrap {
	return &config.Bootstrap{
		Logger: zap.NewNop(),
		InternalConfig: &config.InternalConfig{
			App: config.App{
				BaseUrl:                 "http://registry.test",
				EndpointPrefix:          "api",
				Version:                 "v1",
				PatientRepositoryDriver: constvars.DriverMemory,
				ArtifactStorageDriver:   constvars.DriverFilesystem,
				NotificationQueueDriver: constvars.DriverMemory,
			},
			Storage: config.AppStorage{FilesystemRoot: t.TempDir()},
		},
		DriverConfig: &config.DriverConfig{},
	}
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory Backends", func(t *testing.T) {
		c, err := New(ctx, memoryBootstrap(t))

		require.NoError(t, err)
		assert.NotNil(t, c.PatientUsecase)
		assert.NotNil(t, c.ArtifactUsecase)
		assert.IsType(t, &notificationqueue.MemoryQueue{}, c.NotificationQueue)
	})

	t.Run("Missing Connection", func(t *testing.T) {
		b := memoryBootstrap(t)
		b.InternalConfig.App.PatientRepositoryDriver = constvars.DriverMongo

		_, err := New(ctx, b)

		assert.ErrorContains(t, err, "requires a mongo database")
	})

	t.Run("Unknown Driver", func(t *testing.T) {
		b := memoryBootstrap(t)
		b.InternalConfig.App.ArtifactStorageDriver = "s3"

		_, err := New(ctx, b)

		assert.ErrorContains(t, err, `unknown artifact storage driver "s3"`)
	})
}
