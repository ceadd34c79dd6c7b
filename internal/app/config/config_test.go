package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInternalConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg := NewInternalConfig()

		assert.Empty(t, cfg.App.EmailAllowedDomains)
		assert.Equal(t, []string{"1", "44", "91", "598"}, cfg.App.PhoneCountryCodes)
		assert.Equal(t, 2, cfg.App.PatientImageMaxUploadSizeInMB)
	})

	t.Run("Overrides From Environment", func(t *testing.T) {
		t.Setenv("APP_EMAIL_ALLOWED_DOMAINS", " gmail.com, ,yahoo.com ")
		t.Setenv("APP_PATIENT_REPOSITORY_DRIVER", "postgres")

		cfg := NewInternalConfig()

		assert.Equal(t, []string{"gmail.com", "yahoo.com"}, cfg.App.EmailAllowedDomains)
		assert.Equal(t, "postgres", cfg.App.PatientRepositoryDriver)
	})
}
