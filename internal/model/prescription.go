package model

import "github.com/google/uuid"

type Prescription struct {
	ID            int       `db:"prescription_id" json:"prescription_id"`
	PatientID     uuid.UUID `db:"patient_id" json:"patient_id"`
	MedicineName  string    `db:"medicine_name" json:"medicine_name"`
	Dosage        string    `db:"dosage" json:"dosage"`
	Amount        int       `db:"amount" json:"amount"`
	OnGoing       bool      `db:"on_going" json:"on_going"`
	DoctorComment *string   `db:"doctor_comment" json:"doctor_comment"`
	ImageURL      *string   `db:"image_url" json:"image_url"`
}

type MedicineSearchItem struct {
	MedicineID   int    `db:"medicine_id" json:"medicine_id"`
	MedicineName string `db:"medicine_name" json:"medicine_name"`
}

type MedicineInfo struct {
	MedicineID   int    `db:"medicine_id" json:"medicine_id"`
	MedicineName string `db:"medicine_name" json:"medicine_name"`
	ImageURL     string `db:"image_url" json:"img_link"`
}

type CreatePrescriptionRequest struct {
	MedicineID    int       `json:"medicines_id" binding:"required"`
	PatientID     uuid.UUID `json:"patient_id" binding:"required"`
	DoctorComment *string   `json:"doctor_comment"`
	Dosage        string    `json:"dosage" binding:"required"`
	Amount        int       `json:"amount" binding:"required,gt=0"`
	OnGoing       bool      `json:"on_going"`
}

type UpdatePrescriptionRequest struct {
	MedicineID    int       `json:"medicines_id" binding:"required"`
	PatientID     uuid.UUID `json:"patient_id" binding:"required"`
	DoctorComment *string   `json:"doctor_comment"`
	Dosage        string    `json:"dosage" binding:"required"`
	Amount        int       `json:"amount" binding:"required,gt=0"`
	OnGoing       bool      `json:"on_going"`
}

type PrescriptionIDResponse struct {
	PrescriptionID int `json:"prescription_id"`
}
