package patients

import (
	"errors"
	"patient-registry-service/internal/pkg/constvars"
	"strings"

	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
)

// duplicateFieldFromMongoError maps a duplicate key error on one of the unique indexes
// to the submission field it guards.
func duplicateFieldFromMongoError(err error) (string, bool) {
	if !mongo.IsDuplicateKeyError(err) {
		return "", false
	}
	message := err.Error()
	switch {
	case strings.Contains(message, constvars.MongoIndexPatientsName):
		return constvars.FormFieldName, true
	case strings.Contains(message, constvars.MongoIndexPatientsEmail):
		return constvars.FormFieldEmail, true
	}
	return "", false
}

func duplicateFieldFromPostgresError(err error) (string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != constvars.PostgresUniqueViolationCode {
		return "", false
	}
	switch pqErr.Constraint {
	case constvars.PostgresConstraintPatientsName:
		return constvars.FormFieldName, true
	case constvars.PostgresConstraintPatientsEmail:
		return constvars.FormFieldEmail, true
	}
	return "", false
}
