package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingPatientIDKey          = "patient_id"
	LoggingPatientCountKey       = "patient_count"
	LoggingArtifactRefKey        = "artifact_ref"
	LoggingFieldKey              = "field"
	LoggingFieldErrorsKey        = "field_errors"
	LoggingErrorCodeKey          = "error_code"
	LoggingTaskIDKey             = "task_id"
	LoggingTaskStateKey          = "task_state"
	LoggingFailedCountKey        = "failed_count"
	LoggingQueueNameKey          = "queue_name"
	LoggingFetchedCountKey       = "fetched_count"
	LoggingRedisKey              = "redis_key"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
)
