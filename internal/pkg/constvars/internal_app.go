package constvars

type ContextKey string

const (
	ResourcePatients  = "patients"
	ResourceArtifacts = "artifacts"
)

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "PTREG_SVC_"
)

const (
	AppEnvProduction  = "production"
	AppEnvDevelopment = "development"
)

// Backend selectors for the pluggable drivers.
const (
	DriverMongo      = "mongo"
	DriverPostgres   = "postgres"
	DriverMemory     = "memory"
	DriverMinio      = "minio"
	DriverFilesystem = "filesystem"
	DriverRabbitMQ   = "rabbitmq"
)

const (
	ArtifactPatientImagesPrefix = "patient-images"
	ArtifactDefaultExtension    = ".jpg"
	MIMEImageJPEG               = "image/jpeg"
)

const (
	MongoCollectionPatients = "patients"
	MongoCollectionCounters = "counters"
	MongoCounterPatientsKey = "patients"
	MongoIndexPatientsName  = "patients_name_unique"
	MongoIndexPatientsEmail = "patients_email_unique"
	MongoIndexPatientsImage = "patients_image_ref"
	MongoIndexPatientsSeq   = "patients_sequence"
)

const (
	PostgresConstraintPatientsName  = "patients_name_key"
	PostgresConstraintPatientsEmail = "patients_email_key"
	PostgresUniqueViolationCode     = "23505"
)

const (
	RedisKeyOrphanedArtifacts      = "registry:orphaned_artifacts"
	RedisKeyPendingNotifications   = "registry:pending_notifications"
	RedisKeyNotificationDelivered  = "registry:notification:delivered:%s"
	RedisKeyNotificationWorkerLock = "registry:notification_worker:lock"
	RedisKeyMaintenanceWorkerLock  = "registry:maintenance_worker:lock"
)
