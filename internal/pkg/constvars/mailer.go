package constvars

const (
	EmailPatientRegisteredSubject = "Patient Sign-Up Confirmation"
)

const (
	EmailSendHTMLSubjectFormat = "From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s\r\n"
)
