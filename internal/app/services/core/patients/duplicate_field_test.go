package patients

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func mongoDuplicateKeyError(index string) error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{
			Index:   0,
			Code:    11000,
			Message: fmt.Sprintf("E11000 duplicate key error collection: registry.patients index: %s dup key: { : \"x\" }", index),
		}},
	}
}

func TestDuplicateFieldFromMongoError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantField string
		wantOK    bool
	}{
		{name: "Name Index", err: mongoDuplicateKeyError("patients_name_unique"), wantField: "name", wantOK: true},
		{name: "Email Index", err: mongoDuplicateKeyError("patients_email_unique"), wantField: "email", wantOK: true},
		{name: "Unrelated Index", err: mongoDuplicateKeyError("_id_"), wantOK: false},
		{name: "Not A Duplicate", err: errors.New("connection reset"), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, ok := duplicateFieldFromMongoError(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantField, field)
		})
	}
}

func TestDuplicateFieldFromPostgresError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantField string
		wantOK    bool
	}{
		{name: "Name Constraint", err: &pq.Error{Code: "23505", Constraint: "patients_name_key"}, wantField: "name", wantOK: true},
		{name: "Email Constraint", err: fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Constraint: "patients_email_key"}), wantField: "email", wantOK: true},
		{name: "Other Constraint", err: &pq.Error{Code: "23505", Constraint: "patients_pkey"}, wantOK: false},
		{name: "Other Code", err: &pq.Error{Code: "23503", Constraint: "patients_email_key"}, wantOK: false},
		{name: "Not A Postgres Error", err: errors.New("connection refused"), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, ok := duplicateFieldFromPostgresError(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantField, field)
		})
	}
}
