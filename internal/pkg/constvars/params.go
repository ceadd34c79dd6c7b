package constvars

const (
	URLParamPatientID     = "patient_id"
	URLParamArtifactToken = "token"
)

const (
	FormFieldName        = "name"
	FormFieldEmail       = "email"
	FormFieldAddress     = "address"
	FormFieldPhoneNumber = "phone_number"
	FormFieldCountryCode = "country_code"
	FormFieldPhone       = "phone"
	FormFieldPassword    = "password"
	FormFieldImage       = "image"
)

// PasswordMaxBytes is the longest input bcrypt will hash.
const PasswordMaxBytes = 72
