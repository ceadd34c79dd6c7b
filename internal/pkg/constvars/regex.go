package constvars

const (
	RegexContainAtLeastOneSpecialChar = `[^A-Za-z0-9\s]`
	RegexContainAtLeastOneLetter      = `[A-Za-z]`
	RegexContainAtLeastOneDigit       = `\d`
	RegexEmail                        = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	RegexPersonName                   = `^[A-Za-z\s]+$`
	RegexNumeric                      = `^\d+$`
	RegexArtifactReference            = `^patient-images/[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.(jpg|jpeg)$`
)
