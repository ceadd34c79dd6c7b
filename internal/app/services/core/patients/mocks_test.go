package patients

import (
	"context"
	"patient-registry-service/internal/app/models"

	"github.com/stretchr/testify/mock"
)

type mockArtifactStore struct {
	mock.Mock
}

func (m *mockArtifactStore) Store(ctx context.Context, data []byte, extension, contentType string) (string, error) {
	args := m.Called(ctx, data, extension, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockArtifactStore) Fetch(ctx context.Context, ref string) (*models.Artifact, error) {
	args := m.Called(ctx, ref)
	artifact, _ := args.Get(0).(*models.Artifact)
	return artifact, args.Error(1)
}

func (m *mockArtifactStore) Delete(ctx context.Context, ref string) error {
	return m.Called(ctx, ref).Error(0)
}

type mockPatientRepository struct {
	mock.Mock
}

func (m *mockPatientRepository) Create(ctx context.Context, submission *models.ValidatedSubmission, imageRef string) (*models.Patient, error) {
	args := m.Called(ctx, submission, imageRef)
	patient, _ := args.Get(0).(*models.Patient)
	return patient, args.Error(1)
}

func (m *mockPatientRepository) List(ctx context.Context) ([]models.Patient, error) {
	args := m.Called(ctx)
	patients, _ := args.Get(0).([]models.Patient)
	return patients, args.Error(1)
}

func (m *mockPatientRepository) Get(ctx context.Context, patientID string) (*models.Patient, error) {
	args := m.Called(ctx, patientID)
	patient, _ := args.Get(0).(*models.Patient)
	return patient, args.Error(1)
}

func (m *mockPatientRepository) ExistsByImageRef(ctx context.Context, imageRef string) (bool, error) {
	args := m.Called(ctx, imageRef)
	return args.Bool(0), args.Error(1)
}

type mockNotificationDispatcher struct {
	mock.Mock
}

func (m *mockNotificationDispatcher) Enqueue(ctx context.Context, patient *models.Patient) error {
	return m.Called(ctx, patient).Error(0)
}
