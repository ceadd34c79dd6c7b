package contracts

import (
	"context"
	"patient-registry-service/internal/app/models"
	"patient-registry-service/internal/pkg/dto/requests"
	"patient-registry-service/internal/pkg/dto/responses"
)

type PatientUsecase interface {
	RegisterPatient(ctx context.Context, request *requests.RegisterPatient) (*responses.Patient, error)
	ListPatients(ctx context.Context) ([]responses.Patient, error)
	GetPatient(ctx context.Context, patientID string) (*responses.Patient, error)
}

// PatientRepository enforces name and email uniqueness atomically on Create.
type PatientRepository interface {
	Create(ctx context.Context, submission *models.ValidatedSubmission, imageRef string) (*models.Patient, error)
	List(ctx context.Context) ([]models.Patient, error)
	Get(ctx context.Context, patientID string) (*models.Patient, error)
	ExistsByImageRef(ctx context.Context, imageRef string) (bool, error)
}

type SubmissionValidator interface {
	Validate(request *requests.RegisterPatient) (*models.ValidatedSubmission, error)
}
