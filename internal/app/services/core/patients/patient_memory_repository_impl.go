package patients

import (
	"context"
	"patient-registry-service/internal/app/contracts"
	"patient-registry-service/internal/app/models"
	"patient-registry-service/internal/pkg/constvars"
	"patient-registry-service/internal/pkg/exceptions"
	"patient-registry-service/internal/pkg/utils"
	"sync"

	"github.com/google/uuid"
)

// patientMemoryRepository keeps patients in process memory. The mutex plays the role
// of the unique constraints: the duplicate check and the insert happen under one lock.
type patientMemoryRepository struct {
	mu        sync.RWMutex
	patients  []models.Patient
	byID      map[string]int
	byName    map[string]string
	byEmail   map[string]string
	imageRefs map[string]string
	sequence  int64
}

func NewPatientMemoryRepository() contracts.PatientRepository {
	return &patientMemoryRepository{
		byID:      make(map[string]int),
		byName:    make(map[string]string),
		byEmail:   make(map[string]string),
		imageRefs: make(map[string]string),
	}
}

func (repo *patientMemoryRepository) Create(ctx context.Context, submission *models.ValidatedSubmission, imageRef string) (*models.Patient, error) {
	passwordHash, err := utils.HashPassword(submission.Password)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, exceptions.ErrServerDeadlineExceeded(err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, taken := repo.byName[submission.Name]; taken {
		return nil, exceptions.ErrDuplicateField(nil, constvars.FormFieldName)
	}
	if _, taken := repo.byEmail[submission.Email]; taken {
		return nil, exceptions.ErrDuplicateField(nil, constvars.FormFieldEmail)
	}

	repo.sequence++
	patient := models.Patient{
		ID:           uuid.New().String(),
		Sequence:     repo.sequence,
		Name:         submission.Name,
		Email:        submission.Email,
		Address:      submission.Address,
		PhoneNumber:  submission.PhoneNumber,
		PasswordHash: passwordHash,
		ImageRef:     imageRef,
	}
	patient.SetCreatedAtUpdatedAt()

	repo.byID[patient.ID] = len(repo.patients)
	repo.byName[patient.Name] = patient.ID
	repo.byEmail[patient.Email] = patient.ID
	repo.imageRefs[patient.ImageRef] = patient.ID
	repo.patients = append(repo.patients, patient)

	created := patient
	return &created, nil
}

func (repo *patientMemoryRepository) List(ctx context.Context) ([]models.Patient, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return append(make([]models.Patient, 0, len(repo.patients)), repo.patients...), nil
}

func (repo *patientMemoryRepository) Get(ctx context.Context, patientID string) (*models.Patient, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	index, ok := repo.byID[patientID]
	if !ok {
		return nil, nil
	}
	patient := repo.patients[index]
	return &patient, nil
}

func (repo *patientMemoryRepository) ExistsByImageRef(ctx context.Context, imageRef string) (bool, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	_, ok := repo.imageRefs[imageRef]
	return ok, nil
}
