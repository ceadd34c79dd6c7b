package exceptions

import (
	"errors"
	"patient-registry-service/internal/pkg/constvars"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CollectValidationErrors appends one message per violated tag in err to fieldErrors under field.
// overrides replaces the default message for a tag.
func CollectValidationErrors(err error, field string, fieldErrors FieldErrors, overrides map[string]string) {
	if err == nil {
		return
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fieldErrors.Add(field, field+" "+constvars.ErrDevInvalidInput)
		return
	}

	for _, fieldErr := range validationErrors {
		fieldErrors.Add(field, field+" "+validationMessage(fieldErr, overrides))
	}
}

func validationMessage(fieldErr validator.FieldError, overrides map[string]string) string {
	tag := fieldErr.Tag()
	if message, ok := overrides[tag]; ok {
		return message
	}

	customMessage, ok := constvars.CustomValidationErrorMessages[tag]
	if !ok {
		return "is invalid"
	}
	if constvars.TagsWithParams[tag] {
		customMessage = strings.Replace(customMessage, "%s", fieldErr.Param(), 1)
	}
	return customMessage
}
