package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"patient-registry-service/internal/app/contracts"
	"patient-registry-service/internal/app/models"
	"patient-registry-service/internal/pkg/constvars"
	"patient-registry-service/internal/pkg/exceptions"
	"patient-registry-service/internal/pkg/utils"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

type filesystemStorage struct {
	Root string
	Log  *zap.Logger
}

func NewFilesystemStorage(root string, logger *zap.Logger) contracts.ArtifactStore {
	return &filesystemStorage{
		Root: root,
		Log:  logger,
	}
}

// Store writes to a temp file in the target directory, syncs it, and hard links it into place.
// The link fails if the target exists, so nothing is ever overwritten and no reference
// can resolve to a half written file.
func (f *filesystemStorage) Store(ctx context.Context, data []byte, extension, contentType string) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if err := ctx.Err(); err != nil {
		return "", exceptions.ErrArtifactStorage(err)
	}

	ref := utils.GenerateArtifactReference(extension)
	target := f.pathOf(ref)
	f.Log.Info("filesystemStorage.Store called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingArtifactRefKey, ref),
	)

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", exceptions.ErrArtifactStorage(err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", exceptions.ErrArtifactStorage(err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", exceptions.ErrArtifactStorage(err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", exceptions.ErrArtifactStorage(err)
	}
	if err := tmp.Close(); err != nil {
		return "", exceptions.ErrArtifactStorage(err)
	}

	if err := os.Link(tmpName, target); err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", exceptions.ErrArtifactAlreadyExists(ref)
		}
		f.Log.Error("filesystemStorage.Store error linking artifact into place",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrArtifactStorage(err)
	}

	f.Log.Info("filesystemStorage.Store succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingArtifactRefKey, ref),
	)
	return ref, nil
}

func (f *filesystemStorage) Fetch(ctx context.Context, ref string) (*models.Artifact, error) {
	if !IsValidReference(ref) {
		return nil, exceptions.ErrArtifactInvalidRef(ref)
	}

	data, err := os.ReadFile(f.pathOf(ref))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, exceptions.ErrArtifactNotFound(err, ref)
		}
		return nil, exceptions.ErrArtifactFetch(err, ref)
	}

	return &models.Artifact{
		Ref:         ref,
		ContentType: mimetype.Detect(data).String(),
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

func (f *filesystemStorage) Delete(ctx context.Context, ref string) error {
	if !IsValidReference(ref) {
		return exceptions.ErrArtifactInvalidRef(ref)
	}

	err := os.Remove(f.pathOf(ref))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return exceptions.ErrArtifactDelete(err, ref)
	}
	return nil
}

func (f *filesystemStorage) pathOf(ref string) string {
	return filepath.Join(f.Root, filepath.FromSlash(ref))
}
