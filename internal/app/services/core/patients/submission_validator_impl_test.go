package patients

import (
	"patient-registry-service/internal/pkg/dto/requests"
	"patient-registry-service/internal/pkg/exceptions"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01, 0x01, 0x00, 0x00, 0x01, 0xFF, 0xD9}
	pngBytes  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 'I', 'H', 'D', 'R'}
)

func defaultRules() ValidationRules {
	return ValidationRules{
		PhoneCountryCodes: []string{"1", "44", "91", "598"},
		ImageMaxSizeInMB:  2,
	}
}

func validRequest() *requests.RegisterPatient {
	return &requests.RegisterPatient{
		Name:        "Jane Doe",
		Email:       "jane@example.com",
		Address:     "221B Baker Street",
		PhoneNumber: "+15550100",
		Password:    "s3cret!pass",
		Image: &requests.UploadedFile{
			Filename:    "id.jpg",
			ContentType: "image/jpeg",
			Size:        int64(len(jpegBytes)),
			Data:        jpegBytes,
		},
	}
}

func fieldErrorsOf(t *testing.T, err error) exceptions.FieldErrors {
	t.Helper()
	require.Error(t, err)
	require.True(t, exceptions.IsKind(err, exceptions.KindValidation), "expected a validation error, got %v", err)
	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok)
	return customErr.Errors
}

func TestSubmissionValidator_Validate(t *testing.T) {
	t.Run("Valid Submission Is Sanitized", func(t *testing.T) {
		request := validRequest()
		request.Name = "  Jane Doe "
		request.Email = " Jane.Doe@Example.COM "
		request.PhoneNumber = "+1 555 0100"

		submission, err := NewSubmissionValidator(defaultRules()).Validate(request)

		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", submission.Name)
		assert.Equal(t, "jane.doe@example.com", submission.Email)
		assert.Equal(t, "+15550100", submission.PhoneNumber)
		assert.Equal(t, ".jpg", submission.Image.Extension)
		assert.Equal(t, "image/jpeg", submission.Image.ContentType)
		assert.Equal(t, " Jane.Doe@Example.COM ", request.Email, "the caller's request must not be modified")
	})

	t.Run("Collects Every Failing Field", func(t *testing.T) {
		request := &requests.RegisterPatient{}

		_, err := NewSubmissionValidator(defaultRules()).Validate(request)

		fieldErrors := fieldErrorsOf(t, err)
		assert.ElementsMatch(t, []string{"name", "email", "address", "phone_number", "password", "image"}, fieldErrors.Fields())
		assert.Equal(t, []string{"name is required"}, fieldErrors["name"])
		assert.Equal(t, []string{"image is required"}, fieldErrors["image"])
	})

	t.Run("Collects Every Rule On A Field", func(t *testing.T) {
		request := validRequest()
		request.Password = "short"

		_, err := NewSubmissionValidator(defaultRules()).Validate(request)

		fieldErrors := fieldErrorsOf(t, err)
		assert.ElementsMatch(t, []string{
			"password must be at least 8 characters long",
			"password must contain at least one letter, one number and one symbol",
		}, fieldErrors["password"])
	})

	t.Run("Name Email And Password Wrong Together", func(t *testing.T) {
		request := validRequest()
		request.Name = "John3"
		request.Email = "a@b"
		request.Password = "short"

		_, err := NewSubmissionValidator(defaultRules()).Validate(request)

		fieldErrors := fieldErrorsOf(t, err)
		assert.Equal(t, []string{"email", "name", "password"}, fieldErrors.Fields())
		assert.Contains(t, fieldErrors["name"], "name may only contain letters and spaces")
		assert.Contains(t, fieldErrors["email"], "email must be a valid email address")
		assert.Contains(t, fieldErrors["password"], "password must be at least 8 characters long")
	})

	t.Run("Password At The Bcrypt Limit", func(t *testing.T) {
		request := validRequest()
		request.Password = "a1!" + strings.Repeat("x", 69)

		_, err := NewSubmissionValidator(defaultRules()).Validate(request)

		assert.NoError(t, err)
	})

	tests := []struct {
		name    string
		mutate  func(r *requests.RegisterPatient)
		field   string
		message string
	}{
		{
			name:    "Name With Digits",
			mutate:  func(r *requests.RegisterPatient) { r.Name = "J4ne" },
			field:   "name",
			message: "name may only contain letters and spaces",
		},
		{
			name:    "Name Too Long",
			mutate:  func(r *requests.RegisterPatient) { r.Name = strings.Repeat("a", 51) },
			field:   "name",
			message: "name may not be greater than 50 characters",
		},
		{
			name:    "Malformed Email",
			mutate:  func(r *requests.RegisterPatient) { r.Email = "not-an-email" },
			field:   "email",
			message: "email must be a valid email address",
		},
		{
			name:    "Email Without Domain Suffix",
			mutate:  func(r *requests.RegisterPatient) { r.Email = "a@b" },
			field:   "email",
			message: "email must be a valid email address",
		},
		{
			name:    "Address Too Long",
			mutate:  func(r *requests.RegisterPatient) { r.Address = strings.Repeat("x", 256) },
			field:   "address",
			message: "address may not be greater than 255 characters",
		},
		{
			name:    "Phone Without Plus",
			mutate:  func(r *requests.RegisterPatient) { r.PhoneNumber = "15550100" },
			field:   "phone_number",
			message: "phone_number must start with a supported country code (+1, +44, +91, +598) followed by digits only",
		},
		{
			name:    "Phone With Unsupported Country Code",
			mutate:  func(r *requests.RegisterPatient) { r.PhoneNumber = "+995550100" },
			field:   "phone_number",
			message: "phone_number must start with a supported country code (+1, +44, +91, +598) followed by digits only",
		},
		{
			name:    "Phone With Letters",
			mutate:  func(r *requests.RegisterPatient) { r.PhoneNumber = "+44abc" },
			field:   "phone_number",
			message: "phone_number must start with a supported country code (+1, +44, +91, +598) followed by digits only",
		},
		{
			name:    "Phone Too Long",
			mutate:  func(r *requests.RegisterPatient) { r.PhoneNumber = "+1" + strings.Repeat("5", 19) },
			field:   "phone_number",
			message: "phone_number may not be greater than 20 characters",
		},
		{
			name:    "Password Without Symbol",
			mutate:  func(r *requests.RegisterPatient) { r.Password = "password123" },
			field:   "password",
			message: "password must contain at least one letter, one number and one symbol",
		},
		{
			name:    "Password Longer Than Bcrypt Accepts",
			mutate:  func(r *requests.RegisterPatient) { r.Password = "a1!" + strings.Repeat("x", 80) },
			field:   "password",
			message: "password may not be longer than 72 bytes",
		},
		{
			name:    "Multibyte Password Over The Byte Limit",
			mutate:  func(r *requests.RegisterPatient) { r.Password = "a1!" + strings.Repeat("é", 35) },
			field:   "password",
			message: "password may not be longer than 72 bytes",
		},
		{
			name:    "Image With Wrong Extension",
			mutate:  func(r *requests.RegisterPatient) { r.Image.Filename = "id.png" },
			field:   "image",
			message: "image must be a file of type: jpg, jpeg",
		},
		{
			name:    "Image With PNG Content",
			mutate:  func(r *requests.RegisterPatient) { r.Image.Data = pngBytes },
			field:   "image",
			message: "image must be a JPEG image",
		},
		{
			name:    "Empty Image",
			mutate:  func(r *requests.RegisterPatient) { r.Image.Data = nil },
			field:   "image",
			message: "image must not be empty",
		},
		{
			name:    "Image Too Large",
			mutate:  func(r *requests.RegisterPatient) { r.Image.Size = 3 * 1024 * 1024 },
			field:   "image",
			message: "image may not be greater than 2048 kilobytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := validRequest()
			tt.mutate(request)

			_, err := NewSubmissionValidator(defaultRules()).Validate(request)

			fieldErrors := fieldErrorsOf(t, err)
			assert.Equal(t, []string{tt.field}, fieldErrors.Fields())
			assert.Contains(t, fieldErrors[tt.field], tt.message)
		})
	}

	t.Run("Email Domain Allow List", func(t *testing.T) {
		rules := defaultRules()
		rules.EmailAllowedDomains = []string{"gmail.com", "outlook.com"}
		validator := NewSubmissionValidator(rules)

		request := validRequest()
		request.Email = "jane@GMAIL.com"
		_, err := validator.Validate(request)
		assert.NoError(t, err)

		request = validRequest()
		_, err = validator.Validate(request)
		fieldErrors := fieldErrorsOf(t, err)
		assert.Equal(t, []string{"email must use one of the accepted email providers (gmail.com, outlook.com)"}, fieldErrors["email"])
	})

	t.Run("Country Codes Accept Leading Plus", func(t *testing.T) {
		rules := defaultRules()
		rules.PhoneCountryCodes = []string{"+598"}
		request := validRequest()
		request.PhoneNumber = "+59899123456"

		_, err := NewSubmissionValidator(rules).Validate(request)

		assert.NoError(t, err)
	})
}
