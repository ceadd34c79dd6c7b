package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"patient-registry-service/internal/app/components"
	"patient-registry-service/internal/app/config"
	"patient-registry-service/internal/app/delivery/http/controllers"
	"patient-registry-service/internal/app/delivery/http/middlewares"
	"patient-registry-service/internal/app/delivery/http/routers"
	"patient-registry-service/internal/app/drivers/database"
	"patient-registry-service/internal/app/drivers/logger"
	"patient-registry-service/internal/app/drivers/mailer"
	"patient-registry-service/internal/app/drivers/messaging"
	storageDriver "patient-registry-service/internal/app/drivers/storage"
	"patient-registry-service/internal/app/services/core/maintenance"
	"patient-registry-service/internal/app/services/core/notifications"
	sharedMailer "patient-registry-service/internal/app/services/shared/mailer"
	"patient-registry-service/internal/pkg/constvars"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Version sets the default build version
var Version = "develop"

// Tag sets the default latest commit tag
var Tag = "0.0.1-rc"

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)
	log.Info("Starting patient registry service",
		zap.String("version", Version),
		zap.String("tag", Tag),
		zap.String("app_env", internalConfig.App.Env),
	)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.Error(err))
	}
	time.Local = location

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Redis:          database.NewRedisClient(driverConfig),
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	switch internalConfig.App.PatientRepositoryDriver {
	case constvars.DriverMongo:
		bootstrap.MongoDB = database.NewMongoDB(driverConfig)
	case constvars.DriverPostgres:
		bootstrap.Postgres = database.NewPostgresDB(driverConfig)
	}
	if internalConfig.App.ArtifactStorageDriver == constvars.DriverMinio {
		bootstrap.Minio = storageDriver.NewMinio(driverConfig, internalConfig)
	}
	if internalConfig.App.NotificationQueueDriver == constvars.DriverRabbitMQ {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig)
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	err = bootstrapingTheApp(workerCtx, bootstrap)
	if err != nil {
		log.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", internalConfig.App.Port),
		Handler: bootstrap.Router,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	cancelWorkers()
	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Failed to release resources", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(ctx context.Context, bootstrap *config.Bootstrap) error {
	log := bootstrap.Logger
	internalConfig := bootstrap.InternalConfig

	app, err := components.New(ctx, bootstrap)
	if err != nil {
		return err
	}

	// Workers
	smtpMailer := sharedMailer.NewSMTPMailer(
		mailer.NewSMTPClient(bootstrap.DriverConfig),
		internalConfig.Notification.EmailSender,
		log,
	)
	notificationWorker := notifications.NewWorker(log, internalConfig, app.Locker, app.NotificationQueue, smtpMailer, app.RedisRepository)
	bootstrap.WorkerStop = notificationWorker.Start(ctx)

	maintenanceWorker := maintenance.NewWorker(log, internalConfig, app.Locker, app.Ledger, app.ArtifactStore, app.PatientRepository, app.NotificationDispatcher)
	maintenanceWorker.Start(ctx)
	bootstrap.MaintenanceWorkerStop = maintenanceWorker.Stop

	// HTTP
	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares.NewMiddlewares(log, internalConfig),
		controllers.NewPatientController(log, app.PatientUsecase, internalConfig),
		controllers.NewArtifactController(log, app.ArtifactUsecase),
	)
	return nil
}
