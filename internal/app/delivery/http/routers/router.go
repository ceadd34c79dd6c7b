package routers

import (
	"fmt"
	"patient-registry-service/internal/app/config"
	"patient-registry-service/internal/app/delivery/http/controllers"
	"patient-registry-service/internal/app/delivery/http/middlewares"
	"patient-registry-service/internal/pkg/constvars"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	patientController *controllers.PatientController,
	artifactController *controllers.ArtifactController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{constvars.MethodGet, constvars.MethodPost, constvars.MethodOptions},
		AllowedHeaders:   []string{constvars.HeaderAccept, constvars.HeaderContentType, constvars.HeaderXCSRFToken, constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderLink, constvars.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	if internalConfig.App.MaxRequests > 0 {
		window := time.Duration(internalConfig.App.MaxTimeRequestsPerSeconds) * time.Second
		if window <= 0 {
			window = time.Second
		}
		router.Use(httprate.LimitByIP(internalConfig.App.MaxRequests, window))
	}

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.LimitRequestBody)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/"+constvars.ResourcePatients, func(r chi.Router) {
				attachPatientRoutes(r, patientController)
			})

			r.Route("/"+constvars.ResourceArtifacts, func(r chi.Router) {
				attachArtifactRoutes(r, artifactController)
			})
		})
	})
}

// ArtifactBaseURL is where the signed image links of SetupRoutes are served.
func ArtifactBaseURL(internalConfig *config.InternalConfig) string {
	return fmt.Sprintf("%s/%s/%s/%s",
		internalConfig.App.BaseUrl,
		internalConfig.App.EndpointPrefix,
		internalConfig.App.Version,
		constvars.ResourceArtifacts,
	)
}
