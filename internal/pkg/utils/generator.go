package utils

import (
	"fmt"
	"patient-registry-service/internal/pkg/constvars"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.New().String()
}

// GenerateArtifactReference builds the storage key for a patient image. Only the
// extension is taken from the client, and only after it has been vetted.
func GenerateArtifactReference(extension string) string {
	if extension == "" {
		extension = constvars.ArtifactDefaultExtension
	}
	return fmt.Sprintf("%s/%s%s", constvars.ArtifactPatientImagesPrefix, uuid.New().String(), extension)
}
