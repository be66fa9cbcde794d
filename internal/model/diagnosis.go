package model

import "time"

type DiagnosisEntry struct {
	ID         int       `db:"diagnosis_id" json:"diagnosis_id"`
	Symptom    string    `db:"symptom" json:"symptom"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
}

type PatientHealthInfo struct {
	Age               *int      `db:"age" json:"age"`
	Gender            *string   `db:"gender" json:"gender"`
	HeightCm          *float64  `db:"height_cm" json:"height_cm"`
	WeightKg          *float64  `db:"weight_kg" json:"weight_kg"`
	MedicalConditions *string   `db:"medical_conditions" json:"medical_conditions"`
	DrugAllergies     *string   `db:"drug_allergies" json:"drug_allergies"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

type CreateDiagnosisRequest struct {
	AppointmentID int    `json:"appointment_id" binding:"required"`
	Symptom       string `json:"symptom" binding:"required"`
}

type UpdateDiagnosisRequest struct {
	Symptom string `json:"symptom" binding:"required"`
}
