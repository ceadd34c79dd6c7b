package constvars

// Machine readable error codes returned as "error_code"
const (
	ErrorCodeValidationFailed   = "VALIDATION_FAILED"
	ErrorCodeDuplicateField     = "DUPLICATE_FIELD"
	ErrorCodeStorageFailure     = "STORAGE_FAILURE"
	ErrorCodeUnavailable        = "SERVICE_UNAVAILABLE"
	ErrorCodeNotFound           = "NOT_FOUND"
	ErrorCodeBadRequest         = "BAD_REQUEST"
	ErrorCodeDeadlineExceeded   = "DEADLINE_EXCEEDED"
	ErrorCodeUnexpected         = "UNEXPECTED_ERROR"
	ErrorCodeArtifactLinkDenied = "ARTIFACT_LINK_INVALID"
)
