package exceptions

import (
	"fmt"
	"patient-registry-service/internal/pkg/constvars"
)

var (
	// Submission
	ErrInvalidSubmission = func(fieldErrors FieldErrors) *CustomError {
		customErr := BuildNewCustomError(nil, constvars.StatusBadRequest, constvars.ErrClientValidationFailed, fmt.Sprintf("%s on fields %v", constvars.ErrDevValidationFailed, fieldErrors.Fields()))
		customErr.Errors = fieldErrors
		return customErr.classify(KindValidation, constvars.ErrorCodeValidationFailed)
	}
	ErrDuplicateField = func(err error, field string) *CustomError {
		customErr := BuildNewCustomError(err, constvars.StatusConflict, fmt.Sprintf(constvars.ErrClientDuplicateField, field), fmt.Sprintf(constvars.ErrDevDuplicateField, field))
		customErr.Field = field
		customErr.Errors = FieldErrors{field: {field + " " + constvars.DuplicateFieldMessage}}
		return customErr.classify(KindDuplicateField, constvars.ErrorCodeDuplicateField)
	}
	ErrCannotParseMultipartForm = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseMultipartForm).classify(KindBadRequest, constvars.ErrorCodeBadRequest)
	}
	ErrRequestTooLarge = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusRequestEntityTooLarge, constvars.ErrClientRequestTooLarge, constvars.ErrDevCannotParseMultipartForm).classify(KindBadRequest, constvars.ErrorCodeBadRequest)
	}
	ErrCannotReadUploadedFile = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotReadUploadedFile).classify(KindBadRequest, constvars.ErrorCodeBadRequest)
	}
	ErrHashPassword = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevFailedToHashPassword)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrCannotUnmarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotUnmarshalJSON)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded).classify(KindUnavailable, constvars.ErrorCodeDeadlineExceeded)
	}
	ErrServerProcess = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevServerProcess)
	}

	// Patient
	ErrPatientNotFound = func(patientID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, constvars.ErrClientPatientNotFound, fmt.Sprintf(constvars.ErrDevPatientNotFound, patientID)).classify(KindNotFound, constvars.ErrorCodeNotFound)
	}

	// Artifact
	ErrArtifactStorage = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceUnavailable, constvars.ErrDevArtifactStoreFailed).classify(KindStorageFailure, constvars.ErrorCodeStorageFailure)
	}
	ErrArtifactAlreadyExists = func(ref string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusServiceUnavailable, constvars.ErrClientServiceUnavailable, fmt.Sprintf(constvars.ErrDevArtifactAlreadyExists, ref)).classify(KindStorageFailure, constvars.ErrorCodeStorageFailure)
	}
	ErrArtifactNotFound = func(err error, ref string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientArtifactNotFound, fmt.Sprintf(constvars.ErrDevArtifactNotFound, ref)).classify(KindNotFound, constvars.ErrorCodeNotFound)
	}
	ErrArtifactInvalidRef = func(ref string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, constvars.ErrClientArtifactNotFound, fmt.Sprintf(constvars.ErrDevArtifactInvalidRef, ref)).classify(KindNotFound, constvars.ErrorCodeNotFound)
	}
	ErrArtifactFetch = func(err error, ref string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceUnavailable, fmt.Sprintf(constvars.ErrDevArtifactFetchFailed, ref)).classify(KindUnavailable, constvars.ErrorCodeUnavailable)
	}
	ErrArtifactDelete = func(err error, ref string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceUnavailable, fmt.Sprintf(constvars.ErrDevArtifactDeleteFailed, ref)).classify(KindUnavailable, constvars.ErrorCodeUnavailable)
	}
	ErrArtifactLinkInvalid = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, constvars.ErrClientArtifactLinkExpired, constvars.ErrDevArtifactTokenInvalid).classify(KindBadRequest, constvars.ErrorCodeArtifactLinkDenied)
	}
	ErrArtifactLinkSign = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevArtifactTokenSign)
	}

	// Minio
	ErrMinioPutObject = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceUnavailable, fmt.Sprintf(constvars.ErrDevMinioFailedToPutObject, bucketName)).classify(KindStorageFailure, constvars.ErrorCodeStorageFailure)
	}
	ErrMinioStatObject = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceUnavailable, fmt.Sprintf(constvars.ErrDevMinioFailedToStatObject, bucketName)).classify(KindStorageFailure, constvars.ErrorCodeStorageFailure)
	}

	// Mongo DB
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceUnavailable, constvars.ErrDevDBFailedToInsertDocument).classify(KindUnavailable, constvars.ErrorCodeUnavailable)
	}
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceUnavailable, constvars.ErrDevDBFailedToFindDocument).classify(KindUnavailable, constvars.ErrorCodeUnavailable)
	}
	ErrMongoDBIterateDocuments = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceUnavailable, constvars.ErrDevDBFailedToIterateDocuments).classify(KindUnavailable, constvars.ErrorCodeUnavailable)
	}
	ErrMongoDBIncrementCounter = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceUnavailable, constvars.ErrDevDBFailedToIncrementCounter).classify(KindUnavailable, constvars.ErrorCodeUnavailable)
	}

	// Postgres DB
	ErrPostgresDBInsertData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceUnavailable, constvars.ErrDevDBFailedToInsertData).classify(KindUnavailable, constvars.ErrorCodeUnavailable)
	}
	ErrPostgresDBFindData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceUnavailable, constvars.ErrDevDBFailedToFindData).classify(KindUnavailable, constvars.ErrorCodeUnavailable)
	}
	ErrPostgresDBIterateDataset = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceUnavailable, constvars.ErrDevDBFailedToIterateDataset).classify(KindUnavailable, constvars.ErrorCodeUnavailable)
	}

	// Redis
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceUnavailable, constvars.ErrDevRedisGetData).classify(KindUnavailable, constvars.ErrorCodeUnavailable)
	}
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceUnavailable, constvars.ErrDevRedisSetData).classify(KindUnavailable, constvars.ErrorCodeUnavailable)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceUnavailable, constvars.ErrDevRedisDeleteData).classify(KindUnavailable, constvars.ErrorCodeUnavailable)
	}
	ErrRedisAddToSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceUnavailable, constvars.ErrDevRedisSAdd).classify(KindUnavailable, constvars.ErrorCodeUnavailable)
	}
	ErrRedisGetSetMembers = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceUnavailable, constvars.ErrDevRedisSMembers).classify(KindUnavailable, constvars.ErrorCodeUnavailable)
	}
	ErrRedisRemoveFromSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceUnavailable, constvars.ErrDevRedisSRem).classify(KindUnavailable, constvars.ErrorCodeUnavailable)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisUnlock)
	}
	ErrRedisRefreshLock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisRefreshLock)
	}

	// RabbitMQ
	ErrRabbitMQPublishMessage = func(err error, queueName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceUnavailable, fmt.Sprintf(constvars.ErrDevRabbitMQPublish, queueName)).classify(KindUnavailable, constvars.ErrorCodeUnavailable)
	}
	ErrRabbitMQFetchMessage = func(err error, queueName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceUnavailable, fmt.Sprintf(constvars.ErrDevRabbitMQFetch, queueName)).classify(KindUnavailable, constvars.ErrorCodeUnavailable)
	}
	ErrRabbitMQAckMessage = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceUnavailable, constvars.ErrDevRabbitMQAck).classify(KindUnavailable, constvars.ErrorCodeUnavailable)
	}
	ErrQueueDeliveryAbsent = func(deliveryTag uint64) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevQueueDeliveryAbsent, deliveryTag))
	}

	// SMTP
	ErrSMTPSendEmail = func(err error, hostname string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceUnavailable, fmt.Sprintf(constvars.ErrDevSMTPSendEmail, hostname)).classify(KindUnavailable, constvars.ErrorCodeUnavailable)
	}
)
