package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/pkg/apperror"
)

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]model.Prescription, error) {
	rows := []model.Prescription{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT
			p.prescription_id,
			p.patient_id,
			m.medicine_name,
			p.dosage,
			p.amount,
			p.on_going,
			p.doctor_comment,
			m.image_url
		FROM prescriptions p
		JOIN medicines m ON m.medicine_id = p.medicine_id
		WHERE p.patient_id = $1
	`, patientID)
	if err != nil {
		return nil, apperror.FromDB(err, "prescriptions")
	}
	return rows, nil
}

func (r *prescriptionRepository) SearchMedicines(ctx context.Context, name string) ([]model.MedicineSearchItem, error) {
	rows := []model.MedicineSearchItem{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT medicine_id, medicine_name
		FROM medicines
		WHERE medicine_name ILIKE $1
		ORDER BY medicine_name
		LIMIT 50
	`, "%"+name+"%")
	if err != nil {
		return nil, apperror.FromDB(err, "medicines")
	}
	return rows, nil
}

func (r *prescriptionRepository) MedicineInfo(ctx context.Context, medicineID int) (*model.MedicineInfo, error) {
	var info model.MedicineInfo
	err := r.db.GetContext(ctx, &info, `
		SELECT medicine_id, medicine_name, COALESCE(image_url, '') AS image_url
		FROM medicines
		WHERE medicine_id = $1
	`, medicineID)
	if err != nil {
		return nil, apperror.FromDB(err, "medicine")
	}
	return &info, nil
}

func (r *prescriptionRepository) Create(ctx context.Context, req *model.CreatePrescriptionRequest) (int, error) {
	var prescriptionID int
	err := r.db.GetContext(ctx, &prescriptionID, `
		INSERT INTO prescriptions (patient_id, medicine_id, dosage, amount, on_going, doctor_comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING prescription_id
	`, req.PatientID, req.MedicineID, req.Dosage, req.Amount, req.OnGoing, req.DoctorComment)
	if err != nil {
		return 0, apperror.FromDB(err, "prescription")
	}
	return prescriptionID, nil
}

func (r *prescriptionRepository) Update(ctx context.Context, prescriptionID int, req *model.UpdatePrescriptionRequest) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE prescriptions
		SET patient_id = $2,
		    medicine_id = $3,
		    dosage = $4,
		    amount = $5,
		    on_going = $6,
		    doctor_comment = $7
		WHERE prescription_id = $1
	`, prescriptionID, req.PatientID, req.MedicineID, req.Dosage, req.Amount, req.OnGoing, req.DoctorComment)
	if err != nil {
		return false, apperror.FromDB(err, "prescription")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperror.Internal(err)
	}
	return n > 0, nil
}

func (r *prescriptionRepository) Delete(ctx context.Context, prescriptionID int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM prescriptions WHERE prescription_id = $1
	`, prescriptionID)
	if err != nil {
		return false, apperror.FromDB(err, "prescription")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperror.Internal(err)
	}
	return n > 0, nil
}
