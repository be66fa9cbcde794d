package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/pkg/apperror"
)

func (r *diagnosisRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]model.DiagnosisEntry, error) {
	rows := []model.DiagnosisEntry{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT diagnosis_id, symptom, recorded_at
		FROM diagnoses
		WHERE patient_id = $1
		ORDER BY recorded_at
	`, patientID)
	if err != nil {
		return nil, apperror.FromDB(err, "diagnoses")
	}
	return rows, nil
}

func (r *diagnosisRepository) HealthInfo(ctx context.Context, patientID uuid.UUID) (*model.PatientHealthInfo, error) {
	var info model.PatientHealthInfo
	err := r.db.GetContext(ctx, &info, `
		SELECT age, gender,
		       height_cm::float8 AS height_cm,
		       weight_kg::float8 AS weight_kg,
		       medical_conditions, drug_allergies, updated_at
		FROM patient_health_info
		WHERE patient_id = $1
	`, patientID)
	if err != nil {
		return nil, apperror.FromDB(err, "patient health info")
	}
	return &info, nil
}

func (r *diagnosisRepository) AppointmentParties(ctx context.Context, appointmentID int) (*model.AppointmentAccess, error) {
	var access model.AppointmentAccess
	err := r.db.GetContext(ctx, &access, `
		SELECT a.patient_id, ts.doctor_id
		FROM appointments a
		JOIN time_slots ts ON ts.timeslot_id = a.timeslot_id
		WHERE a.appointment_id = $1
	`, appointmentID)
	if err != nil {
		return nil, apperror.FromDB(err, "appointment")
	}
	return &access, nil
}

func (r *diagnosisRepository) Create(ctx context.Context, appointmentID int, patientID, doctorID uuid.UUID, symptom string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO diagnoses (appointment_id, patient_id, doctor_id, symptom)
		VALUES ($1, $2, $3, $4)
	`, appointmentID, patientID, doctorID, symptom)
	if err != nil {
		return apperror.FromDB(err, "diagnosis")
	}
	return nil
}

func (r *diagnosisRepository) UpdateSymptom(ctx context.Context, diagnosisID int, symptom string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE diagnoses SET symptom = $2 WHERE diagnosis_id = $1
	`, diagnosisID, symptom)
	if err != nil {
		return false, apperror.FromDB(err, "diagnosis")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperror.Internal(err)
	}
	return n > 0, nil
}
