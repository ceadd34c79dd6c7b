package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math/rand"
	"patient-registry-service/internal/app/components"
	"patient-registry-service/internal/app/config"
	"patient-registry-service/internal/app/drivers/database"
	"patient-registry-service/internal/app/drivers/logger"
	"patient-registry-service/internal/app/drivers/messaging"
	storageDriver "patient-registry-service/internal/app/drivers/storage"
	"patient-registry-service/internal/pkg/constvars"
	"patient-registry-service/internal/pkg/dto/requests"
	"patient-registry-service/internal/pkg/exceptions"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	firstNames = []string{"Ada", "Grace", "Alan", "Edsger", "Barbara", "Donald", "Margaret", "Ken", "Radia", "Niklaus", "Frances", "Dennis"}
	lastNames  = []string{"Lovelace", "Hopper", "Turing", "Dijkstra", "Liskov", "Knuth", "Hamilton", "Thompson", "Perlman", "Wirth", "Allen", "Ritchie"}
	streets    = []string{"Baker Street", "Abbey Road", "Penny Lane", "Carnaby Street", "Fleet Street"}
)

const maxAttemptsPerPatient = 5

func main() {
	count := flag.Int("count", 10, "number of demo patients to register")
	flag.Parse()

	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	log := logger.NewZapLogger(driverConfig, internalConfig)

	bootstrap := &config.Bootstrap{
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	defer func() {
		if err := bootstrap.Shutdown(context.Background()); err != nil {
			log.Error("Failed to release resources", zap.Error(err))
		}
	}()

	app, err := components.New(ctx, bootstrap)
	if err != nil {
		log.Fatal("Failed to assemble registration pipeline", zap.Error(err))
	}

	photo, err := demoPhoto()
	if err != nil {
		log.Fatal("Failed to encode demo photo", zap.Error(err))
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	created := 0
	for i := 0; i < *count; i++ {
		for attempt := 1; attempt <= maxAttemptsPerPatient; attempt++ {
			patient, err := app.PatientUsecase.RegisterPatient(ctx, demoPatient(rng, photo))
			if err == nil {
				created++
				log.Info("Seeded patient", zap.String(constvars.LoggingPatientIDKey, patient.ID), zap.String("email", patient.Email))
				break
			}
			if exceptions.IsKind(err, exceptions.KindDuplicateField) {
				continue
			}
			log.Fatal("Failed to seed patient", zap.Error(err))
		}
	}

	log.Info("Seeding finished", zap.Int("requested", *count), zap.Int("created", created))
}

func demoPatient(rng *rand.Rand, photo []byte) *requests.RegisterPatient {
	first := firstNames[rng.Intn(len(firstNames))]
	last := lastNames[rng.Intn(len(lastNames))]
	middle := string(rune('A' + rng.Intn(26)))

	return &requests.RegisterPatient{
		Name:        fmt.Sprintf("%s %s %s", first, middle, last),
		Email:       strings.ToLower(fmt.Sprintf("%s.%s.%s%d@example.com", first, middle, last, rng.Intn(1000))),
		Address:     fmt.Sprintf("%d %s", 1+rng.Intn(250), streets[rng.Intn(len(streets))]),
		PhoneNumber: fmt.Sprintf("+44%010d", rng.Int63n(10_000_000_000)),
		Password:    "Seeded!Pass1",
		Image: &requests.UploadedFile{
			Filename:    "photo.jpg",
			ContentType: constvars.MIMEImageJPEG,
			Size:        int64(len(photo)),
			Data:        photo,
		},
	}
}

func demoPhoto() ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for x := 0; x < 32; x++ {
		for y := 0; y < 32; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 8), G: uint8(y * 8), B: 160, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
