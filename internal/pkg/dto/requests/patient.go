package requests

// RegisterPatient is the raw submission as read off the form. Nothing here is trusted.
type RegisterPatient struct {
	Name        string        `form:"name"`
	Email       string        `form:"email"`
	Address     string        `form:"address"`
	PhoneNumber string        `form:"phone_number"`
	Password    string        `form:"password"`
	Image       *UploadedFile `form:"image"`
}

type UploadedFile struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}
