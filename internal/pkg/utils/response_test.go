package utils

import (
	"errors"
	"net/http/httptest"
	"patient-registry-service/internal/pkg/exceptions"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildErrorResponse(t *testing.T) {
	t.Run("Validation Error Carries Field Errors", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		fieldErrors := exceptions.FieldErrors{}
		fieldErrors.Add("email", "email must be a valid email address")

		BuildErrorResponse(zap.NewNop(), recorder, exceptions.ErrInvalidSubmission(fieldErrors))

		assert.Equal(t, 400, recorder.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Validation failed", body["message"])
		assert.Equal(t, "VALIDATION_FAILED", body["error_code"])
		assert.Contains(t, body["errors"], "email")
	})

	t.Run("Production Hides Developer Details", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		recorder := httptest.NewRecorder()

		BuildErrorResponse(zap.NewNop(), recorder, exceptions.ErrServerProcess(errors.New("boom")))

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, float64(500), body["status_code"])
		assert.NotContains(t, body, "dev_message")
		assert.NotContains(t, body, "locations")
	})

	t.Run("Unclassified Error Becomes Generic", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		BuildErrorResponse(zap.NewNop(), recorder, errors.New("driver exploded"))

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, 500, recorder.Code)
		assert.Equal(t, "An unexpected error occured while creating the patient.", body["message"])
		assert.Equal(t, "UNEXPECTED_ERROR", body["error_code"])
	})
}
