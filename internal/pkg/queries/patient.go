package queries

const (
	InsertPatient = `
		INSERT INTO patients (id, name, email, address, phone_number, password_hash, image_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING seq
	`

	GetAllPatients = `
		SELECT id, seq, name, email, address, phone_number, password_hash, image_ref, created_at, updated_at
		FROM patients
		ORDER BY seq ASC
	`

	GetPatientByID = `
		SELECT id, seq, name, email, address, phone_number, password_hash, image_ref, created_at, updated_at
		FROM patients
		WHERE id = $1
	`

	ExistsPatientByImageRef = `
		SELECT EXISTS (SELECT 1 FROM patients WHERE image_ref = $1)
	`
)
