package routers

import (
	"patient-registry-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachPatientRoutes(router chi.Router, patientController *controllers.PatientController) {
	router.Get("/", patientController.ListPatients)
	router.Post("/", patientController.RegisterPatient)
	router.Get("/{patient_id}", patientController.GetPatient)
}
