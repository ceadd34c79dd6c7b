package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":        "is required",
	"email":           "must be a valid email address",
	"email_domain":    "must use one of the accepted email providers",
	"min":             "must be at least %s characters long",
	"max":             "may not be greater than %s characters",
	"person_name":     "may only contain letters and spaces",
	"phone_number":    "must start with a supported country code followed by digits only",
	"password_policy": "must contain at least one letter, one number and one symbol",
	"password_bytes":  "may not be longer than 72 bytes",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min": true,
	"max": true,
}

// Messages for checks that are not plain validator tags
const (
	ImageValidationRequired    = "is required"
	ImageValidationExtension   = "must be a file of type: jpg, jpeg"
	ImageValidationContent     = "must be a JPEG image"
	ImageValidationSizeFormat  = "may not be greater than %d kilobytes"
	ImageValidationEmpty       = "must not be empty"
	DuplicateFieldMessage      = "has already been taken"
	PhoneValidationCountryCode = "must start with a supported country code (%s) followed by digits only"
	EmailValidationDomains     = "must use one of the accepted email providers (%s)"
)

// Error messages for clients
const (
	ErrClientValidationFailed              = "Validation failed"
	ErrClientDuplicateField                = "A patient with this %s already exists"
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "An unexpected error occured while creating the patient."
	ErrClientServiceUnavailable            = "the service is temporarily unavailable, please try again later"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientPatientNotFound               = "patient not found"
	ErrClientArtifactNotFound              = "file not found"
	ErrClientArtifactLinkExpired           = "the file link is invalid or has expired"
	ErrClientRequestTooLarge               = "the submitted form is too large"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevValidationFailed         = "submission validation failed"
	ErrDevCannotParseMultipartForm = "cannot parse multipart form"
	ErrDevCannotReadUploadedFile   = "cannot read uploaded file"
	ErrDevCannotMarshalJSON        = "cannot marshal JSON"
	ErrDevCannotUnmarshalJSON      = "cannot unmarshal JSON"
	ErrDevFailedToHashPassword     = "failed to hash password"
	ErrDevServerProcess            = "server failed to process the request"
	ErrDevServerDeadlineExceeded   = "deadline exceeded"
	ErrDevDuplicateField           = "unique constraint violated on field '%s'"
	ErrDevPatientNotFound          = "patient '%s' not found"

	// Artifact messages
	ErrDevArtifactStoreFailed     = "failed to store artifact"
	ErrDevArtifactAlreadyExists   = "artifact '%s' already exists"
	ErrDevArtifactNotFound        = "artifact '%s' not found"
	ErrDevArtifactInvalidRef      = "artifact reference '%s' is not valid"
	ErrDevArtifactFetchFailed     = "failed to fetch artifact '%s'"
	ErrDevArtifactDeleteFailed    = "failed to delete artifact '%s'"
	ErrDevArtifactTokenInvalid    = "artifact link token invalid"
	ErrDevArtifactTokenSign       = "failed to sign artifact link token"
	ErrDevAuthSigningMethod       = "unexpected signing method"
	ErrDevMinioFailedToPutObject  = "failed to put object into minio storage with bucket name '%s'"
	ErrDevMinioFailedToStatObject = "failed to stat object in minio storage with bucket name '%s'"

	// Database messages
	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents on database"
	ErrDevDBFailedToIncrementCounter = "failed to increment counter on database"
	ErrDevDBFailedToInsertData       = "failed to insert data into postgres database"
	ErrDevDBFailedToFindData         = "failed to find data on postgres database"
	ErrDevDBFailedToIterateDataset   = "failed to iterate dataset on postgres database"

	// Redis messages
	ErrDevRedisGetData        = "failed to get data from redis"
	ErrDevRedisSetData        = "failed to set data into redis"
	ErrDevRedisDeleteData     = "failed to delete data from redis"
	ErrDevRedisSAdd           = "failed to add members into redis set"
	ErrDevRedisSMembers       = "failed to get members of redis set"
	ErrDevRedisSRem           = "failed to remove members from redis set"
	ErrDevRedisLockNotOwned   = "lock not owned by this client"
	ErrDevRedisUnlock         = "failed to release redis lock"
	ErrDevRedisRefreshLock    = "failed to refresh redis lock"
	ErrDevRabbitMQPublish     = "failed to publish message into rabbitmq queue '%s'"
	ErrDevRabbitMQNotConfirm  = "message not confirmed by rabbitmq"
	ErrDevRabbitMQFetch       = "failed to fetch message from rabbitmq queue '%s'"
	ErrDevRabbitMQAck         = "failed to ack rabbitmq delivery"
	ErrDevQueueDeliveryAbsent = "no in-flight delivery with tag %d"

	// SMTP messages
	ErrDevSMTPSendEmail = "failed to send email using SMTP with host '%s'"
)
