package notifications

import (
	"bytes"
	"html/template"
	"patient-registry-service/internal/app/models"
)

var patientConfirmationTemplate = template.Must(template.New("patient_confirmation").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        p { font-size: 12px; }
        .signature { font-style: italic; }
    </style>
    <title>Patient Confirmation</title>
</head>
<body>
    <p>Dear {{.PatientName}},</p>
    <br>
    <p>Just one more step before you get started.</p>
    <p>Please confirm your email address at ...</p>
    <br>
    <p>Sincerely,</p>
    <p class="signature">A software developer aspirant.</p>
</body>
</html>
`))

func renderPatientConfirmation(task models.NotificationTask) (string, error) {
	var body bytes.Buffer
	if err := patientConfirmationTemplate.Execute(&body, task); err != nil {
		return "", err
	}
	return body.String(), nil
}
