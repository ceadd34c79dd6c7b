package patients

import (
	"context"
	"database/sql"
	"patient-registry-service/internal/app/contracts"
	"patient-registry-service/internal/app/models"
	"patient-registry-service/internal/pkg/constvars"
	"patient-registry-service/internal/pkg/exceptions"
	"patient-registry-service/internal/pkg/queries"
	"patient-registry-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type patientPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewPatientPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.PatientRepository {
	return &patientPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPatient(row rowScanner) (*models.Patient, error) {
	var model models.Patient
	err := row.Scan(
		&model.ID,
		&model.Sequence,
		&model.Name,
		&model.Email,
		&model.Address,
		&model.PhoneNumber,
		&model.PasswordHash,
		&model.ImageRef,
		&model.CreatedAt,
		&model.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &model, nil
}

func (repo *patientPostgresRepository) Create(ctx context.Context, submission *models.ValidatedSubmission, imageRef string) (*models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	repo.Log.Info("patientPostgresRepository.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	passwordHash, err := utils.HashPassword(submission.Password)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}

	patient := &models.Patient{
		ID:           uuid.New().String(),
		Name:         submission.Name,
		Email:        submission.Email,
		Address:      submission.Address,
		PhoneNumber:  submission.PhoneNumber,
		PasswordHash: passwordHash,
		ImageRef:     imageRef,
	}
	patient.SetCreatedAtUpdatedAt()

	err = repo.DB.QueryRowContext(ctx, queries.InsertPatient,
		patient.ID,
		patient.Name,
		patient.Email,
		patient.Address,
		patient.PhoneNumber,
		patient.PasswordHash,
		patient.ImageRef,
		patient.CreatedAt,
		patient.UpdatedAt,
	).Scan(&patient.Sequence)
	if err != nil {
		if field, ok := duplicateFieldFromPostgresError(err); ok {
			repo.Log.Info("patientPostgresRepository.Create rejected duplicate",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingFieldKey, field),
			)
			return nil, exceptions.ErrDuplicateField(err, field)
		}
		repo.Log.Error("patientPostgresRepository.Create error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBInsertData(err)
	}

	repo.Log.Info("patientPostgresRepository.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
	)
	return patient, nil
}

func (repo *patientPostgresRepository) List(ctx context.Context) ([]models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	repo.Log.Info("patientPostgresRepository.List called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	rows, err := repo.DB.QueryContext(ctx, queries.GetAllPatients)
	if err != nil {
		repo.Log.Error("patientPostgresRepository.List error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	patients := make([]models.Patient, 0)
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			repo.Log.Error("patientPostgresRepository.List error scanning row",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		patients = append(patients, *patient)
	}

	if err := rows.Err(); err != nil {
		repo.Log.Error("patientPostgresRepository.List rows iteration error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return patients, nil
}

func (repo *patientPostgresRepository) Get(ctx context.Context, patientID string) (*models.Patient, error) {
	// ids are uuid columns, anything else cannot exist
	if _, err := uuid.Parse(patientID); err != nil {
		return nil, nil
	}

	patient, err := scanPatient(repo.DB.QueryRowContext(ctx, queries.GetPatientByID, patientID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return patient, nil
}

func (repo *patientPostgresRepository) ExistsByImageRef(ctx context.Context, imageRef string) (bool, error) {
	var exists bool
	err := repo.DB.QueryRowContext(ctx, queries.ExistsPatientByImageRef, imageRef).Scan(&exists)
	if err != nil {
		return false, exceptions.ErrPostgresDBFindData(err)
	}
	return exists, nil
}
