package contracts

import (
	"context"
	"patient-registry-service/internal/app/models"
	"time"
)

// ArtifactStore persists uploaded files under references it generates itself.
// Store never overwrites and Delete is idempotent.
type ArtifactStore interface {
	Store(ctx context.Context, data []byte, extension, contentType string) (string, error)
	Fetch(ctx context.Context, ref string) (*models.Artifact, error)
	Delete(ctx context.Context, ref string) error
}

type ArtifactURLSigner interface {
	SignArtifactURL(ref string, expiry time.Duration) (string, error)
	ParseArtifactToken(token string) (string, error)
}

type ArtifactUsecase interface {
	FetchArtifact(ctx context.Context, token string) (*models.Artifact, error)
}
