package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"patient-registry-service/internal/app/config"
	"patient-registry-service/internal/app/contracts"
	"patient-registry-service/internal/pkg/constvars"
	"patient-registry-service/internal/pkg/dto/requests"
	"patient-registry-service/internal/pkg/exceptions"
	"patient-registry-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const defaultRequestTimeout = 10 * time.Second

type PatientController struct {
	Log            *zap.Logger
	PatientUsecase contracts.PatientUsecase
	InternalConfig *config.InternalConfig
}

func NewPatientController(logger *zap.Logger, patientUsecase contracts.PatientUsecase, internalConfig *config.InternalConfig) *PatientController {
	return &PatientController{
		Log:            logger,
		PatientUsecase: patientUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *PatientController) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("PatientController.RegisterPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	maxMemory := int64(ctrl.InternalConfig.App.PatientImageMaxUploadSizeInMB+1) << 20
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		ctrl.Log.Error("PatientController.RegisterPatient error parsing multipart form",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrRequestTooLarge(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	request := &requests.RegisterPatient{
		Name:        r.FormValue(constvars.FormFieldName),
		Email:       r.FormValue(constvars.FormFieldEmail),
		Address:     r.FormValue(constvars.FormFieldAddress),
		PhoneNumber: r.FormValue(constvars.FormFieldPhoneNumber),
		Password:    r.FormValue(constvars.FormFieldPassword),
	}
	if request.PhoneNumber == "" {
		request.PhoneNumber = utils.CombinePhoneNumber(r.FormValue(constvars.FormFieldCountryCode), r.FormValue(constvars.FormFieldPhone))
	}

	image, err := readUploadedFile(r, constvars.FormFieldImage)
	if err != nil {
		ctrl.Log.Error("PatientController.RegisterPatient error reading uploaded image",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotReadUploadedFile(err))
		return
	}
	request.Image = image

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout())
	defer cancel()

	response, err := ctrl.PatientUsecase.RegisterPatient(ctx, request)
	if err != nil {
		ctrl.Log.Error("PatientController.RegisterPatient error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorCodeKey, string(exceptions.KindOf(err))),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("PatientController.RegisterPatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, response.ID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreatePatientSuccessMessage, response)
}

func (ctrl *PatientController) ListPatients(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("PatientController.ListPatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout())
	defer cancel()

	response, err := ctrl.PatientUsecase.ListPatients(ctx)
	if err != nil {
		ctrl.Log.Error("PatientController.ListPatients error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPatientsSuccessMessage, response)
}

func (ctrl *PatientController) GetPatient(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	patientID := chi.URLParam(r, constvars.URLParamPatientID)
	ctrl.Log.Info("PatientController.GetPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout())
	defer cancel()

	response, err := ctrl.PatientUsecase.GetPatient(ctx, patientID)
	if err != nil {
		ctrl.Log.Error("PatientController.GetPatient error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPatientSuccessMessage, response)
}

func (ctrl *PatientController) requestTimeout() time.Duration {
	if ctrl.InternalConfig.App.RequestTimeoutInSeconds > 0 {
		return time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds) * time.Second
	}
	return defaultRequestTimeout
}

// readUploadedFile returns nil when the form has no file under field.
func readUploadedFile(r *http.Request, field string) (*requests.UploadedFile, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &requests.UploadedFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get(constvars.HeaderContentType),
		Size:        header.Size,
		Data:        data,
	}, nil
}
