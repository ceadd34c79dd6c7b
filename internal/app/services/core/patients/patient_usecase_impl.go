package patients

import (
	"context"
	"errors"
	"patient-registry-service/internal/app/config"
	"patient-registry-service/internal/app/contracts"
	"patient-registry-service/internal/app/models"
	"patient-registry-service/internal/pkg/constvars"
	"patient-registry-service/internal/pkg/dto/requests"
	"patient-registry-service/internal/pkg/dto/responses"
	"patient-registry-service/internal/pkg/exceptions"
	"time"

	"go.uber.org/zap"
)

const defaultEnqueueTimeout = 3 * time.Second

type patientUsecase struct {
	Validator              contracts.SubmissionValidator
	ArtifactStore          contracts.ArtifactStore
	PatientRepository      contracts.PatientRepository
	NotificationDispatcher contracts.NotificationDispatcher
	OrphanScheduler        contracts.OrphanArtifactScheduler
	RetryScheduler         contracts.NotificationRetryScheduler
	URLSigner              contracts.ArtifactURLSigner
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

func NewPatientUsecase(
	validator contracts.SubmissionValidator,
	artifactStore contracts.ArtifactStore,
	patientRepository contracts.PatientRepository,
	notificationDispatcher contracts.NotificationDispatcher,
	orphanScheduler contracts.OrphanArtifactScheduler,
	retryScheduler contracts.NotificationRetryScheduler,
	urlSigner contracts.ArtifactURLSigner,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PatientUsecase {
	return &patientUsecase{
		Validator:              validator,
		ArtifactStore:          artifactStore,
		PatientRepository:      patientRepository,
		NotificationDispatcher: notificationDispatcher,
		OrphanScheduler:        orphanScheduler,
		RetryScheduler:         retryScheduler,
		URLSigner:              urlSigner,
		InternalConfig:         internalConfig,
		Log:                    logger,
	}
}

// RegisterPatient runs validate, store artifact, persist, enqueue confirmation.
// A failed enqueue does not fail the registration; the patient is handed to the retry
// scheduler instead. A failed insert leaves the stored artifact to the orphan scheduler.
func (uc *patientUsecase) RegisterPatient(ctx context.Context, request *requests.RegisterPatient) (*responses.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.RegisterPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	submission, err := uc.Validator.Validate(request)
	if err != nil {
		uc.Log.Info("patientUsecase.RegisterPatient submission rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	imageRef, err := uc.ArtifactStore.Store(ctx, submission.Image.Data, submission.Image.Extension, submission.Image.ContentType)
	if err != nil {
		uc.Log.Error("patientUsecase.RegisterPatient error calling ArtifactStore.Store",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if exceptions.IsKind(err, exceptions.KindStorageFailure) {
			return nil, err
		}
		return nil, exceptions.ErrArtifactStorage(err)
	}

	patient, err := uc.PatientRepository.Create(ctx, submission, imageRef)
	if err != nil {
		uc.Log.Error("patientUsecase.RegisterPatient error calling PatientRepository.Create",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingArtifactRefKey, imageRef),
			zap.Error(err),
		)
		uc.scheduleOrphanCleanup(context.WithoutCancel(ctx), imageRef)
		return nil, classifyPersistenceError(err)
	}

	uc.enqueueConfirmation(context.WithoutCancel(ctx), patient)

	uc.Log.Info("patientUsecase.RegisterPatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
	)
	return uc.toPatientResponse(ctx, patient), nil
}

func (uc *patientUsecase) ListPatients(ctx context.Context) ([]responses.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.ListPatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	patients, err := uc.PatientRepository.List(ctx)
	if err != nil {
		uc.Log.Error("patientUsecase.ListPatients error calling PatientRepository.List",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, classifyPersistenceError(err)
	}

	response := make([]responses.Patient, 0, len(patients))
	for i := range patients {
		response = append(response, *uc.toPatientResponse(ctx, &patients[i]))
	}

	uc.Log.Info("patientUsecase.ListPatients succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPatientCountKey, len(response)),
	)
	return response, nil
}

func (uc *patientUsecase) GetPatient(ctx context.Context, patientID string) (*responses.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.GetPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	patient, err := uc.PatientRepository.Get(ctx, patientID)
	if err != nil {
		uc.Log.Error("patientUsecase.GetPatient error calling PatientRepository.Get",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, classifyPersistenceError(err)
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(patientID)
	}

	return uc.toPatientResponse(ctx, patient), nil
}

func (uc *patientUsecase) scheduleOrphanCleanup(ctx context.Context, imageRef string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if err := uc.OrphanScheduler.ScheduleOrphanCleanup(ctx, imageRef); err != nil {
		uc.Log.Error("patientUsecase.RegisterPatient error scheduling orphaned artifact cleanup",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingArtifactRefKey, imageRef),
			zap.Error(err),
		)
	}
}

// enqueueConfirmation expects a context already detached from the caller. The queue
// hand-off gets its own deadline; the retry bookkeeping does not share it.
func (uc *patientUsecase) enqueueConfirmation(ctx context.Context, patient *models.Patient) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	enqueueCtx, cancel := context.WithTimeout(ctx, uc.enqueueTimeout())
	err := uc.NotificationDispatcher.Enqueue(enqueueCtx, patient)
	cancel()
	if err == nil {
		return
	}

	uc.Log.Warn("patientUsecase.RegisterPatient confirmation not enqueued, scheduling retry",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
		zap.Error(err),
	)
	if err := uc.RetryScheduler.ScheduleNotificationRetry(ctx, patient.ID); err != nil {
		uc.Log.Error("patientUsecase.RegisterPatient error scheduling notification retry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patient.ID),
			zap.Error(err),
		)
	}
}

func (uc *patientUsecase) enqueueTimeout() time.Duration {
	if uc.InternalConfig == nil || uc.InternalConfig.Notification.EnqueueTimeoutInMilliseconds <= 0 {
		return defaultEnqueueTimeout
	}
	return time.Duration(uc.InternalConfig.Notification.EnqueueTimeoutInMilliseconds) * time.Millisecond
}

func (uc *patientUsecase) toPatientResponse(ctx context.Context, patient *models.Patient) *responses.Patient {
	response := &responses.Patient{
		ID:          patient.ID,
		Name:        patient.Name,
		Email:       patient.Email,
		Address:     patient.Address,
		PhoneNumber: patient.PhoneNumber,
		Image:       patient.ImageRef,
		CreatedAt:   patient.CreatedAt,
		UpdatedAt:   patient.UpdatedAt,
	}

	if uc.URLSigner == nil || patient.ImageRef == "" {
		return response
	}
	expiry := time.Duration(uc.InternalConfig.JWT.ArtifactLinkExpTimeInMinutes) * time.Minute
	imageURL, err := uc.URLSigner.SignArtifactURL(patient.ImageRef, expiry)
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Warn("patientUsecase.toPatientResponse error signing image url",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return response
	}
	response.ImageURL = imageURL
	return response
}

// classifyPersistenceError keeps repository classifications as they are and turns
// anything unrecognised into an unexpected failure.
func classifyPersistenceError(err error) error {
	if exceptions.IsClassified(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return exceptions.ErrServerDeadlineExceeded(err)
	}
	return exceptions.ErrServerProcess(err)
}
