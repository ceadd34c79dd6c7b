package utils

import (
	"errors"
	"net/http"
	"patient-registry-service/internal/pkg/constvars"
	"patient-registry-service/internal/pkg/dto/responses"
	"patient-registry-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	writeJSON(w, code, responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// BuildErrorResponse renders err as the error envelope. Anything that is not a
// CustomError is reported as a generic 500 so driver details never reach the client.
func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	response := exceptions.CustomError{
		StatusCode:    constvars.StatusInternalServerError,
		Success:       false,
		ClientMessage: constvars.ErrClientSomethingWrongWithApplication,
		ErrorCode:     constvars.ErrorCodeUnexpected,
	}

	var customErr *exceptions.CustomError
	if !errors.As(err, &customErr) {
		log.Error(err.Error())
		writeJSON(w, response.StatusCode, response)
		return
	}

	response.StatusCode = customErr.StatusCode
	response.ClientMessage = customErr.ClientMessage
	response.ErrorCode = customErr.ErrorCode
	response.Errors = customErr.Errors
	logCustomError(log, customErr)

	if GetEnvString("APP_ENV", constvars.AppEnvDevelopment) != constvars.AppEnvProduction {
		response.DevMessage = customErr.DevMessage
		response.Locations = customErr.Locations
	}
	writeJSON(w, response.StatusCode, response)
}

// 4xx responses log at warn, everything else at error.
func logCustomError(log *zap.Logger, customErr *exceptions.CustomError) {
	fields := []zap.Field{
		zap.String(constvars.LoggingErrorCodeKey, customErr.ErrorCode),
		zap.Int(constvars.LoggingStatusCodeKey, customErr.StatusCode),
	}
	if len(customErr.Locations) > 0 {
		fields = append(fields, zap.Any("location", customErr.Locations[0]))
	}
	if customErr.Errors.HasErrors() {
		fields = append(fields, zap.Any(constvars.LoggingFieldErrorsKey, customErr.Errors))
	}

	if customErr.StatusCode < constvars.StatusInternalServerError {
		log.Warn(customErr.DevMessage, fields...)
		return
	}
	log.Error(customErr.DevMessage, fields...)
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
