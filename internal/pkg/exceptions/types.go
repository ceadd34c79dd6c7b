package exceptions

import (
	"errors"
	"fmt"
	"patient-registry-service/internal/pkg/constvars"
	"runtime"
	"sort"
)

// ErrorKind classifies a failure so callers can react without parsing messages.
type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindDuplicateField ErrorKind = "duplicate_field"
	KindStorageFailure ErrorKind = "storage_failure"
	KindUnavailable    ErrorKind = "unavailable"
	KindNotFound       ErrorKind = "not_found"
	KindBadRequest     ErrorKind = "bad_request"
	KindUnexpected     ErrorKind = "unexpected"
)

// FieldErrors maps a submission field to every message that applies to it.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

func (fe FieldErrors) HasErrors() bool {
	return len(fe) > 0
}

func (fe FieldErrors) Fields() []string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

type CustomError struct {
	StatusCode    int         `json:"status_code"`
	Success       bool        `json:"success"`
	ClientMessage string      `json:"message"`
	ErrorCode     string      `json:"error_code,omitempty"`
	Errors        FieldErrors `json:"errors,omitempty"`
	DevMessage    string      `json:"dev_message,omitempty"`
	Locations     []Location  `json:"locations,omitempty"`
	Kind          ErrorKind   `json:"-"`
	Field         string      `json:"-"`
	cause         error
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	location := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, location.File, location.Line, location.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.cause
}

func WrapWithoutError(statusCode int, clientMessage, devMessage string) *CustomError {
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Kind:          KindUnexpected,
		ErrorCode:     constvars.ErrorCodeUnexpected,
		Locations:     []Location{getLocation(2)},
	}
}

func WrapWithError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    fmt.Sprintf("%s: %s", devMessage, err.Error()),
		Kind:          KindUnexpected,
		ErrorCode:     constvars.ErrorCodeUnexpected,
		Locations:     []Location{getLocation(2)},
		cause:         err,
	}
}

// BuildNewCustomError is called from the constructor closures in error.go, so the
// recorded location is the closure's caller.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	customErr := &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Kind:          KindUnexpected,
		ErrorCode:     constvars.ErrorCodeUnexpected,
		Locations:     []Location{getLocation(3)},
		cause:         err,
	}
	if err != nil {
		customErr.DevMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return customErr
}

func (e *CustomError) classify(kind ErrorKind, errorCode string) *CustomError {
	e.Kind = kind
	e.ErrorCode = errorCode
	return e
}

// KindOf reports the classification of err, KindUnexpected for anything unclassified.
func KindOf(err error) ErrorKind {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Kind
	}
	return KindUnexpected
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// IsClassified reports whether err already carries a CustomError.
func IsClassified(err error) bool {
	var customErr *CustomError
	return errors.As(err, &customErr)
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
