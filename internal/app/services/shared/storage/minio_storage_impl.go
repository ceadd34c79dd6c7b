package storage

import (
	"bytes"
	"context"
	"io"
	"patient-registry-service/internal/app/contracts"
	"patient-registry-service/internal/app/models"
	"patient-registry-service/internal/pkg/constvars"
	"patient-registry-service/internal/pkg/exceptions"
	"patient-registry-service/internal/pkg/utils"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const minioErrorCodeNoSuchKey = "NoSuchKey"

type minioStorage struct {
	MinioClient *minio.Client
	BucketName  string
	Log         *zap.Logger
}

func NewMinioStorage(minioClient *minio.Client, bucketName string, logger *zap.Logger) contracts.ArtifactStore {
	return &minioStorage{
		MinioClient: minioClient,
		BucketName:  bucketName,
		Log:         logger,
	}
}

// Store uploads data in a single PutObject call, so a reference never points at a partial object.
func (m *minioStorage) Store(ctx context.Context, data []byte, extension, contentType string) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ref := utils.GenerateArtifactReference(extension)
	m.Log.Info("minioStorage.Store called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingArtifactRefKey, ref),
	)

	_, err := m.MinioClient.StatObject(ctx, m.BucketName, ref, minio.StatObjectOptions{})
	if err == nil {
		return "", exceptions.ErrArtifactAlreadyExists(ref)
	}
	if minio.ToErrorResponse(err).Code != minioErrorCodeNoSuchKey {
		m.Log.Error("minioStorage.Store error checking object existence",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrMinioStatObject(err, m.BucketName)
	}

	_, err = m.MinioClient.PutObject(
		ctx,
		m.BucketName,
		ref,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		m.Log.Error("minioStorage.Store error putting object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrMinioPutObject(err, m.BucketName)
	}

	m.Log.Info("minioStorage.Store succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingArtifactRefKey, ref),
	)
	return ref, nil
}

func (m *minioStorage) Fetch(ctx context.Context, ref string) (*models.Artifact, error) {
	if !IsValidReference(ref) {
		return nil, exceptions.ErrArtifactInvalidRef(ref)
	}

	object, err := m.MinioClient.GetObject(ctx, m.BucketName, ref, minio.GetObjectOptions{})
	if err != nil {
		return nil, exceptions.ErrArtifactFetch(err, ref)
	}
	defer object.Close()

	info, err := object.Stat()
	if err != nil {
		if minio.ToErrorResponse(err).Code == minioErrorCodeNoSuchKey {
			return nil, exceptions.ErrArtifactNotFound(err, ref)
		}
		return nil, exceptions.ErrArtifactFetch(err, ref)
	}

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, exceptions.ErrArtifactFetch(err, ref)
	}

	return &models.Artifact{
		Ref:         ref,
		ContentType: info.ContentType,
		Size:        info.Size,
		Data:        data,
	}, nil
}

// Delete succeeds when the object is already gone.
func (m *minioStorage) Delete(ctx context.Context, ref string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !IsValidReference(ref) {
		return exceptions.ErrArtifactInvalidRef(ref)
	}

	err := m.MinioClient.RemoveObject(ctx, m.BucketName, ref, minio.RemoveObjectOptions{})
	if err != nil && minio.ToErrorResponse(err).Code != minioErrorCodeNoSuchKey {
		m.Log.Error("minioStorage.Delete error removing object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingArtifactRefKey, ref),
			zap.Error(err),
		)
		return exceptions.ErrArtifactDelete(err, ref)
	}
	return nil
}
