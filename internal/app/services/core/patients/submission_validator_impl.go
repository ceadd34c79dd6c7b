package patients

import (
	"fmt"
	"path/filepath"
	"patient-registry-service/internal/app/contracts"
	"patient-registry-service/internal/app/models"
	"patient-registry-service/internal/pkg/constvars"
	"patient-registry-service/internal/pkg/dto/requests"
	"patient-registry-service/internal/pkg/exceptions"
	"patient-registry-service/internal/pkg/utils"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
)

// ValidationRules holds the configurable parts of the submission rules.
type ValidationRules struct {
	EmailAllowedDomains []string
	PhoneCountryCodes   []string
	ImageMaxSizeInMB    int
}

var (
	personNamePattern     = regexp.MustCompile(constvars.RegexPersonName)
	numericPattern        = regexp.MustCompile(constvars.RegexNumeric)
	letterPattern         = regexp.MustCompile(constvars.RegexContainAtLeastOneLetter)
	digitPattern          = regexp.MustCompile(constvars.RegexContainAtLeastOneDigit)
	specialCharPattern    = regexp.MustCompile(constvars.RegexContainAtLeastOneSpecialChar)
	allowedImageExtension = map[string]bool{".jpg": true, ".jpeg": true}
)

type submissionValidator struct {
	validate      *validator.Validate
	rules         ValidationRules
	countryCodes  []string
	overrides     map[string]string
	imageMaxBytes int64
}

func NewSubmissionValidator(rules ValidationRules) contracts.SubmissionValidator {
	v := &submissionValidator{
		validate:      validator.New(),
		rules:         rules,
		countryCodes:  normalizeCountryCodes(rules.PhoneCountryCodes),
		imageMaxBytes: int64(rules.ImageMaxSizeInMB) * 1024 * 1024,
	}

	v.overrides = map[string]string{
		"phone_number": fmt.Sprintf(constvars.PhoneValidationCountryCode, "+"+strings.Join(v.countryCodes, ", +")),
	}
	if len(rules.EmailAllowedDomains) > 0 {
		v.overrides["email_domain"] = fmt.Sprintf(constvars.EmailValidationDomains, strings.Join(rules.EmailAllowedDomains, ", "))
	}

	v.validate.RegisterValidation("person_name", validatePersonName)
	v.validate.RegisterValidation("phone_number", v.validatePhoneNumber)
	v.validate.RegisterValidation("password_policy", v.validatePasswordPolicy)
	v.validate.RegisterValidation("password_bytes", validatePasswordBytes)
	v.validate.RegisterValidation("email_domain", v.validateEmailDomain)
	return v
}

// Validate checks every field and reports every violated rule. Once a required field
// is missing, its remaining rules are skipped.
func (v *submissionValidator) Validate(request *requests.RegisterPatient) (*models.ValidatedSubmission, error) {
	sanitized := *request
	utils.SanitizeRegisterPatientRequest(&sanitized)

	fieldErrors := exceptions.FieldErrors{}
	v.checkField(fieldErrors, constvars.FormFieldName, sanitized.Name, "required,max=50,person_name")
	v.checkField(fieldErrors, constvars.FormFieldEmail, sanitized.Email, "required,email,max=255,email_domain")
	v.checkField(fieldErrors, constvars.FormFieldAddress, sanitized.Address, "required,max=255")
	v.checkField(fieldErrors, constvars.FormFieldPhoneNumber, sanitized.PhoneNumber, "required,max=20,phone_number")
	v.checkField(fieldErrors, constvars.FormFieldPassword, sanitized.Password, "required,min=8,password_bytes,password_policy")
	image := v.checkImage(fieldErrors, sanitized.Image)

	if fieldErrors.HasErrors() {
		return nil, exceptions.ErrInvalidSubmission(fieldErrors)
	}

	return &models.ValidatedSubmission{
		Name:        sanitized.Name,
		Email:       sanitized.Email,
		Address:     sanitized.Address,
		PhoneNumber: sanitized.PhoneNumber,
		Password:    sanitized.Password,
		Image:       *image,
	}, nil
}

func (v *submissionValidator) checkField(fieldErrors exceptions.FieldErrors, field, value, tags string) {
	for _, tag := range strings.Split(tags, ",") {
		if value == "" && tag != "required" {
			continue
		}
		err := v.validate.Var(value, tag)
		exceptions.CollectValidationErrors(err, field, fieldErrors, v.overrides)
		if err != nil && tag == "required" {
			return
		}
	}
}

func (v *submissionValidator) checkImage(fieldErrors exceptions.FieldErrors, file *requests.UploadedFile) *models.ValidatedImage {
	field := constvars.FormFieldImage
	if file == nil || (file.Filename == "" && len(file.Data) == 0) {
		fieldErrors.Add(field, field+" "+constvars.ImageValidationRequired)
		return nil
	}

	valid := true
	extension := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtension[extension] {
		fieldErrors.Add(field, field+" "+constvars.ImageValidationExtension)
		valid = false
	}

	if len(file.Data) == 0 {
		fieldErrors.Add(field, field+" "+constvars.ImageValidationEmpty)
		return nil
	}

	size := int64(len(file.Data))
	if file.Size > size {
		size = file.Size
	}
	if v.imageMaxBytes > 0 && size > v.imageMaxBytes {
		fieldErrors.Add(field, field+" "+fmt.Sprintf(constvars.ImageValidationSizeFormat, v.imageMaxBytes/1024))
		valid = false
	}

	if !mimetype.Detect(file.Data).Is(constvars.MIMEImageJPEG) {
		fieldErrors.Add(field, field+" "+constvars.ImageValidationContent)
		valid = false
	}

	if !valid {
		return nil
	}
	return &models.ValidatedImage{
		Data:        file.Data,
		Extension:   extension,
		ContentType: constvars.MIMEImageJPEG,
	}
}

func validatePersonName(fl validator.FieldLevel) bool {
	return personNamePattern.MatchString(fl.Field().String())
}

// validatePhoneNumber accepts "+", a configured calling code, then one or more digits.
func (v *submissionValidator) validatePhoneNumber(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	if !strings.HasPrefix(phone, "+") {
		return false
	}
	phone = phone[1:]
	for _, code := range v.countryCodes {
		if strings.HasPrefix(phone, code) && numericPattern.MatchString(phone[len(code):]) {
			return true
		}
	}
	return false
}

func validatePasswordBytes(fl validator.FieldLevel) bool {
	return len([]byte(fl.Field().String())) <= constvars.PasswordMaxBytes
}

func (v *submissionValidator) validatePasswordPolicy(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	return letterPattern.MatchString(password) &&
		digitPattern.MatchString(password) &&
		specialCharPattern.MatchString(password)
}

func (v *submissionValidator) validateEmailDomain(fl validator.FieldLevel) bool {
	if len(v.rules.EmailAllowedDomains) == 0 {
		return true
	}
	email := fl.Field().String()
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(email[at+1:])
	for _, allowed := range v.rules.EmailAllowedDomains {
		if domain == strings.ToLower(strings.TrimSpace(allowed)) {
			return true
		}
	}
	return false
}

func normalizeCountryCodes(codes []string) []string {
	normalized := make([]string, 0, len(codes))
	for _, code := range codes {
		code = strings.TrimPrefix(strings.TrimSpace(code), "+")
		if code != "" {
			normalized = append(normalized, code)
		}
	}
	return normalized
}
