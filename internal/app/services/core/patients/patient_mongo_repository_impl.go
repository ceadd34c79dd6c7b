package patients

import (
	"context"
	"patient-registry-service/internal/app/contracts"
	"patient-registry-service/internal/app/models"
	"patient-registry-service/internal/pkg/constvars"
	"patient-registry-service/internal/pkg/exceptions"
	"patient-registry-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type patientMongoRepository struct {
	Collection *mongo.Collection
	Counters   *mongo.Collection
	Log        *zap.Logger
}

type sequenceCounter struct {
	Seq int64 `bson:"seq"`
}

func NewPatientMongoRepository(db *mongo.Database, logger *zap.Logger) contracts.PatientRepository {
	return &patientMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionPatients),
		Counters:   db.Collection(constvars.MongoCollectionCounters),
		Log:        logger,
	}
}

// EnsurePatientIndexes creates the unique indexes that make Create race free.
func EnsurePatientIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(constvars.MongoCollectionPatients).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName(constvars.MongoIndexPatientsName).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(constvars.MongoIndexPatientsEmail).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "imageRef", Value: 1}},
			Options: options.Index().SetName(constvars.MongoIndexPatientsImage),
		},
		{
			Keys:    bson.D{{Key: "sequence", Value: 1}},
			Options: options.Index().SetName(constvars.MongoIndexPatientsSeq),
		},
	})
	return err
}

func (repo *patientMongoRepository) Create(ctx context.Context, submission *models.ValidatedSubmission, imageRef string) (*models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	repo.Log.Info("patientMongoRepository.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	passwordHash, err := utils.HashPassword(submission.Password)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}

	sequence, err := repo.nextSequence(ctx)
	if err != nil {
		repo.Log.Error("patientMongoRepository.Create error incrementing sequence",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrMongoDBIncrementCounter(err)
	}

	patient := &models.Patient{
		ID:           uuid.New().String(),
		Sequence:     sequence,
		Name:         submission.Name,
		Email:        submission.Email,
		Address:      submission.Address,
		PhoneNumber:  submission.PhoneNumber,
		PasswordHash: passwordHash,
		ImageRef:     imageRef,
	}
	patient.SetCreatedAtUpdatedAt()

	_, err = repo.Collection.InsertOne(ctx, patient)
	if err != nil {
		if field, ok := duplicateFieldFromMongoError(err); ok {
			repo.Log.Info("patientMongoRepository.Create rejected duplicate",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingFieldKey, field),
			)
			return nil, exceptions.ErrDuplicateField(err, field)
		}
		repo.Log.Error("patientMongoRepository.Create error inserting document",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}

	repo.Log.Info("patientMongoRepository.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
	)
	return patient, nil
}

func (repo *patientMongoRepository) List(ctx context.Context) ([]models.Patient, error) {
	patients := make([]models.Patient, 0)
	cursor, err := repo.Collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "sequence", Value: 1}}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	err = cursor.All(ctx, &patients)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return patients, nil
}

func (repo *patientMongoRepository) Get(ctx context.Context, patientID string) (*models.Patient, error) {
	var patient models.Patient
	err := repo.Collection.FindOne(ctx, bson.M{"_id": patientID}).Decode(&patient)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &patient, nil
}

func (repo *patientMongoRepository) ExistsByImageRef(ctx context.Context, imageRef string) (bool, error) {
	count, err := repo.Collection.CountDocuments(ctx, bson.M{"imageRef": imageRef}, options.Count().SetLimit(1))
	if err != nil {
		return false, exceptions.ErrMongoDBFindDocument(err)
	}
	return count > 0, nil
}

func (repo *patientMongoRepository) nextSequence(ctx context.Context) (int64, error) {
	var counter sequenceCounter
	err := repo.Counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": constvars.MongoCounterPatientsKey},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}
