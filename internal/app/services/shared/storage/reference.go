package storage

import (
	"patient-registry-service/internal/pkg/constvars"
	"regexp"
)

var artifactReferencePattern = regexp.MustCompile(constvars.RegexArtifactReference)

// IsValidReference reports whether ref has the exact shape Store generates.
// Anything else, including path traversal attempts, is rejected before touching a backend.
func IsValidReference(ref string) bool {
	return artifactReferencePattern.MatchString(ref)
}
