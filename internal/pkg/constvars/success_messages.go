package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Patient messages
	CreatePatientSuccessMessage = "Patient created successfully"
	GetPatientsSuccessMessage   = "Patients retrieved successfully"
	GetPatientSuccessMessage    = "Patient retrieved successfully"
)
