package config

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Postgres Postgres
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
		Minio    Minio
		SMTP     SMTP
	}
	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Postgres struct {
		Host     string
		Port     string
		DbName   string
		Username string
		Password string
		SslMode  string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		UseSSL   bool
	}
	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
	}
)

type (
	InternalConfig struct {
		App          App
		JWT          AppJWT
		Minio        AppMinio
		RabbitMQ     AppRabbitMQ
		Storage      AppStorage
		Notification AppNotification
		Maintenance  AppMaintenance
	}

	App struct {
		Env                           string
		Port                          string
		Version                       string
		Address                       string
		BaseUrl                       string
		Timezone                      string
		EndpointPrefix                string
		MaxRequests                   int
		ShutdownTimeout               int
		MaxTimeRequestsPerSeconds     int
		RequestBodyLimitInMegabyte    int
		RequestTimeoutInSeconds       int
		PatientRepositoryDriver       string
		ArtifactStorageDriver         string
		NotificationQueueDriver       string
		EmailAllowedDomains           []string
		PhoneCountryCodes             []string
		PatientImageMaxUploadSizeInMB int
	}

	AppJWT struct {
		// ArtifactLinkSecret signs the short lived links that serve patient images.
		ArtifactLinkSecret           string
		ArtifactLinkExpTimeInMinutes int
	}

	AppMinio struct {
		BucketName string
	}

	AppRabbitMQ struct {
		NotificationQueue           string
		NotificationDeadLetterQueue string
	}

	AppStorage struct {
		FilesystemRoot string
	}

	AppNotification struct {
		EmailSender                  string
		WorkerIntervalInSeconds      int
		MaxQueue                     int
		MaxAttempts                  int
		RatePerSecond                float64
		RateBurst                    int
		DeliveredMarkerTTLInHours    int
		// EnqueueTimeoutInMilliseconds bounds the hand-off to the queue during registration.
		EnqueueTimeoutInMilliseconds int
	}

	AppMaintenance struct {
		CronSpec string
	}
)
