package controllers

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"patient-registry-service/internal/app/config"
	"patient-registry-service/internal/pkg/constvars"
	"patient-registry-service/internal/pkg/dto/requests"
	"patient-registry-service/internal/pkg/dto/responses"
	"patient-registry-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockPatientUsecase struct {
	mock.Mock
}

func (m *mockPatientUsecase) RegisterPatient(ctx context.Context, request *requests.RegisterPatient) (*responses.Patient, error) {
	args := m.Called(ctx, request)
	patient, _ := args.Get(0).(*responses.Patient)
	return patient, args.Error(1)
}

func (m *mockPatientUsecase) ListPatients(ctx context.Context) ([]responses.Patient, error) {
	args := m.Called(ctx)
	patients, _ := args.Get(0).([]responses.Patient)
	return patients, args.Error(1)
}

func (m *mockPatientUsecase) GetPatient(ctx context.Context, patientID string) (*responses.Patient, error) {
	args := m.Called(ctx, patientID)
	patient, _ := args.Get(0).(*responses.Patient)
	return patient, args.Error(1)
}

func registrationRequest(t *testing.T) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField(constvars.FormFieldName, "Jane Doe"))
	require.NoError(t, writer.WriteField(constvars.FormFieldEmail, "jane@example.com"))
	part, err := writer.CreateFormFile(constvars.FormFieldImage, "id.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte{0xFF, 0xD8, 0xFF, 0xD9})
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", &buf)
	req.Header.Set(constvars.HeaderContentType, writer.FormDataContentType())
	return req
}

func TestPatientController_RegisterPatient(t *testing.T) {
	cfg := &config.InternalConfig{
		App: config.App{RequestTimeoutInSeconds: 1, PatientImageMaxUploadSizeInMB: 2},
	}

	tests := []struct {
		name      string
		err       error
		status    int
		errorCode string
	}{
		{
			name:      "Deadline From Usecase",
			err:       exceptions.ErrServerDeadlineExceeded(context.DeadlineExceeded),
			status:    http.StatusGatewayTimeout,
			errorCode: constvars.ErrorCodeDeadlineExceeded,
		},
		{
			name:      "Duplicate Email",
			err:       exceptions.ErrDuplicateField(errors.New("unique violation"), constvars.FormFieldEmail),
			status:    http.StatusConflict,
			errorCode: constvars.ErrorCodeDuplicateField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usecase := new(mockPatientUsecase)
			usecase.On("RegisterPatient", mock.Anything, mock.AnythingOfType("*requests.RegisterPatient")).Return(nil, tt.err).Once()
			ctrl := NewPatientController(zap.NewNop(), usecase, cfg)

			rr := httptest.NewRecorder()
			ctrl.RegisterPatient(rr, registrationRequest(t))

			assert.Equal(t, tt.status, rr.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.errorCode, body["error_code"])
			usecase.AssertExpectations(t)
		})
	}

	t.Run("Usecase Runs Under The Request Timeout", func(t *testing.T) {
		usecase := new(mockPatientUsecase)
		usecase.On("RegisterPatient", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				deadline, ok := args.Get(0).(context.Context).Deadline()
				require.True(t, ok)
				assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 500*time.Millisecond)
			}).
			Return(&responses.Patient{ID: "p-1", Name: "Jane Doe"}, nil).Once()
		ctrl := NewPatientController(zap.NewNop(), usecase, cfg)

		rr := httptest.NewRecorder()
		ctrl.RegisterPatient(rr, registrationRequest(t))

		assert.Equal(t, http.StatusCreated, rr.Code)
		usecase.AssertExpectations(t)
	})
}
