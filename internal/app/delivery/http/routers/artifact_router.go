package routers

import (
	"patient-registry-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachArtifactRoutes(router chi.Router, artifactController *controllers.ArtifactController) {
	router.Get("/{token}", artifactController.GetArtifact)
}
