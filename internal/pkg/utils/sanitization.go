package utils

import (
	"patient-registry-service/internal/pkg/dto/requests"
	"strings"
)

// SanitizeRegisterPatientRequest trims every text field and lower-cases the email.
// The password is left untouched.
func SanitizeRegisterPatientRequest(request *requests.RegisterPatient) {
	request.Name = strings.TrimSpace(request.Name)
	request.Email = strings.ToLower(strings.TrimSpace(request.Email))
	request.Address = strings.TrimSpace(request.Address)
	request.PhoneNumber = strings.ReplaceAll(strings.TrimSpace(request.PhoneNumber), " ", "")
}

// CombinePhoneNumber joins the country code picker and the local number the way
// the registration form submits them.
func CombinePhoneNumber(countryCode, phone string) string {
	countryCode = strings.TrimPrefix(strings.TrimSpace(countryCode), "+")
	phone = strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	if countryCode == "" {
		return phone
	}
	return "+" + countryCode + phone
}
