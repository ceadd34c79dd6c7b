package config

import (
	"patient-registry-service/internal/pkg/constvars"
	"patient-registry-service/internal/pkg/utils"
	"strings"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "patient_registry"),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
		},
		Postgres: Postgres{
			Host:     utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Port:     utils.GetEnvString("POSTGRES_PORT", "5432"),
			DbName:   utils.GetEnvString("POSTGRES_DB_NAME", "patient_registry"),
			Username: utils.GetEnvString("POSTGRES_USERNAME", "postgres"),
			Password: utils.GetEnvString("POSTGRES_PASSWORD", "postgres"),
			SslMode:  utils.GetEnvString("POSTGRES_SSL_MODE", "disable"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
		SMTP: SMTP{
			Host:     utils.GetEnvString("SMTP_HOST", "localhost"),
			Port:     utils.GetEnvInt("SMTP_PORT", 2525),
			Username: utils.GetEnvString("SMTP_USERNAME", ""),
			Password: utils.GetEnvString("SMTP_PASSWORD", ""),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                           utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                          utils.GetEnvString("APP_PORT", "8080"),
			Version:                       utils.GetEnvString("APP_VERSION", "v1"),
			Address:                       utils.GetEnvString("APP_ADDRESS", "localhost"),
			BaseUrl:                       utils.GetEnvString("APP_BASE_URL", "http://localhost:8080"),
			Timezone:                      utils.GetEnvString("APP_TIMEZONE", "UTC"),
			EndpointPrefix:                utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                   utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeout:               utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			MaxTimeRequestsPerSeconds:     utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestBodyLimitInMegabyte:    utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			RequestTimeoutInSeconds:       utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 15),
			PatientRepositoryDriver:       utils.GetEnvString("APP_PATIENT_REPOSITORY_DRIVER", constvars.DriverMongo),
			ArtifactStorageDriver:         utils.GetEnvString("APP_ARTIFACT_STORAGE_DRIVER", constvars.DriverMinio),
			NotificationQueueDriver:       utils.GetEnvString("APP_NOTIFICATION_QUEUE_DRIVER", constvars.DriverRabbitMQ),
			EmailAllowedDomains:           splitCSV(utils.GetEnvString("APP_EMAIL_ALLOWED_DOMAINS", "")),
			PhoneCountryCodes:             splitCSV(utils.GetEnvString("APP_PHONE_COUNTRY_CODES", "1,44,91,598")),
			PatientImageMaxUploadSizeInMB: utils.GetEnvInt("APP_PATIENT_IMAGE_MAX_UPLOAD_SIZE_IN_MB", 2),
		},
		JWT: AppJWT{
			ArtifactLinkSecret:           utils.GetEnvString("JWT_ARTIFACT_LINK_SECRET", "change-me"),
			ArtifactLinkExpTimeInMinutes: utils.GetEnvInt("JWT_ARTIFACT_LINK_EXP_TIME_IN_MINUTE", 30),
		},
		Minio: AppMinio{
			BucketName: utils.GetEnvString("APP_MINIO_BUCKET_NAME", "patient-registry"),
		},
		RabbitMQ: AppRabbitMQ{
			NotificationQueue:           utils.GetEnvString("APP_RABBITMQ_NOTIFICATION_QUEUE", "patient_notifications"),
			NotificationDeadLetterQueue: utils.GetEnvString("APP_RABBITMQ_NOTIFICATION_DLQ", "patient_notifications_dlq"),
		},
		Storage: AppStorage{
			FilesystemRoot: utils.GetEnvString("APP_STORAGE_FILESYSTEM_ROOT", "./storage/app"),
		},
		Notification: AppNotification{
			EmailSender:                  utils.GetEnvString("APP_NOTIFICATION_EMAIL_SENDER", "no-reply@patient-registry.local"),
			WorkerIntervalInSeconds:      utils.GetEnvInt("APP_NOTIFICATION_WORKER_INTERVAL_IN_SECONDS", 5),
			MaxQueue:                     utils.GetEnvInt("APP_NOTIFICATION_MAX_QUEUE", 20),
			MaxAttempts:                  utils.GetEnvInt("APP_NOTIFICATION_MAX_ATTEMPTS", 5),
			RatePerSecond:                utils.GetEnvFloat("APP_NOTIFICATION_RATE_PER_SECOND", 5),
			RateBurst:                    utils.GetEnvInt("APP_NOTIFICATION_RATE_BURST", 5),
			DeliveredMarkerTTLInHours:    utils.GetEnvInt("APP_NOTIFICATION_DELIVERED_MARKER_TTL_IN_HOURS", 72),
			EnqueueTimeoutInMilliseconds: utils.GetEnvInt("APP_NOTIFICATION_ENQUEUE_TIMEOUT_IN_MILLISECONDS", 3000),
		},
		Maintenance: AppMaintenance{
			CronSpec: utils.GetEnvString("APP_MAINTENANCE_CRON_SPEC", "@every 5m"),
		},
	}
}

func splitCSV(value string) []string {
	result := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
