package controllers

import (
	"context"
	"net/http"
	"patient-registry-service/internal/app/contracts"
	"patient-registry-service/internal/pkg/constvars"
	"patient-registry-service/internal/pkg/utils"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ArtifactController struct {
	Log             *zap.Logger
	ArtifactUsecase contracts.ArtifactUsecase
}

func NewArtifactController(logger *zap.Logger, artifactUsecase contracts.ArtifactUsecase) *ArtifactController {
	return &ArtifactController{
		Log:             logger,
		ArtifactUsecase: artifactUsecase,
	}
}

// GetArtifact streams the file a signed link points to.
func (ctrl *ArtifactController) GetArtifact(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	token := chi.URLParam(r, constvars.URLParamArtifactToken)

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	artifact, err := ctrl.ArtifactUsecase.FetchArtifact(ctx, token)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	contentType := artifact.ContentType
	if contentType == "" {
		contentType = constvars.MIMEOctetStream
	}
	w.Header().Set(constvars.HeaderContentType, contentType)
	w.Header().Set(constvars.HeaderContentLength, strconv.Itoa(len(artifact.Data)))
	w.Header().Set(constvars.HeaderCacheControl, "private, max-age=60")
	w.WriteHeader(constvars.StatusOK)
	if _, err := w.Write(artifact.Data); err != nil {
		ctrl.Log.Warn("ArtifactController.GetArtifact error writing response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingArtifactRefKey, artifact.Ref),
			zap.Error(err),
		)
	}
}
