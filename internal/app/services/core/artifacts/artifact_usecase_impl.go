package artifacts

import (
	"context"
	"patient-registry-service/internal/app/contracts"
	"patient-registry-service/internal/app/models"
	"patient-registry-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

type artifactUsecase struct {
	ArtifactStore contracts.ArtifactStore
	URLSigner     contracts.ArtifactURLSigner
	Log           *zap.Logger
}

func NewArtifactUsecase(artifactStore contracts.ArtifactStore, urlSigner contracts.ArtifactURLSigner, logger *zap.Logger) contracts.ArtifactUsecase {
	return &artifactUsecase{
		ArtifactStore: artifactStore,
		URLSigner:     urlSigner,
		Log:           logger,
	}
}

// FetchArtifact resolves a signed link token to the artifact it was issued for.
func (uc *artifactUsecase) FetchArtifact(ctx context.Context, token string) (*models.Artifact, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("artifactUsecase.FetchArtifact called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ref, err := uc.URLSigner.ParseArtifactToken(token)
	if err != nil {
		uc.Log.Info("artifactUsecase.FetchArtifact link rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	artifact, err := uc.ArtifactStore.Fetch(ctx, ref)
	if err != nil {
		uc.Log.Error("artifactUsecase.FetchArtifact error calling ArtifactStore.Fetch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingArtifactRefKey, ref),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("artifactUsecase.FetchArtifact succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingArtifactRefKey, ref),
	)
	return artifact, nil
}
