package models

type Patient struct {
	ID           string `json:"id" bson:"_id"`
	Sequence     int64  `json:"sequence" bson:"sequence"`
	Name         string `json:"name" bson:"name"`
	Email        string `json:"email" bson:"email"`
	Address      string `json:"address" bson:"address"`
	PhoneNumber  string `json:"phoneNumber" bson:"phoneNumber"`
	PasswordHash string `json:"-" bson:"passwordHash"`
	ImageRef     string `json:"imageRef" bson:"imageRef"`
	TimeModel    `bson:",inline"`
}

// ValidatedSubmission is produced only by the submission validator. Fields are
// already sanitized and the image has been checked.
type ValidatedSubmission struct {
	Name        string
	Email       string
	Address     string
	PhoneNumber string
	Password    string
	Image       ValidatedImage
}

type ValidatedImage struct {
	Data        []byte
	Extension   string
	ContentType string
}
