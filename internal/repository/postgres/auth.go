package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/pkg/apperror"
)

func (r *authRepository) CreatePatient(ctx context.Context, p *model.NewPatient) (uuid.UUID, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, apperror.Internal(err)
	}
	defer tx.Rollback()

	var userID uuid.UUID
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO users (citizen_id, first_name, last_name, email, phone, password)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING user_id
	`, p.CitizenID, p.FirstName, p.LastName, p.Email, p.Phone, p.PasswordHash).Scan(&userID)
	if err != nil {
		return uuid.Nil, apperror.FromDB(err, "user")
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO patient_profile (user_id, hn)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET hn = EXCLUDED.hn
	`, userID, p.HN)
	if err != nil {
		return uuid.Nil, apperror.FromDB(err, "patient profile")
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_roles (user_id, role) VALUES ($1, 'PATIENT')
		ON CONFLICT DO NOTHING
	`, userID)
	if err != nil {
		return uuid.Nil, apperror.FromDB(err, "user role")
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, apperror.Internal(err)
	}
	return userID, nil
}

func (r *authRepository) CreateDoctor(ctx context.Context, d *model.NewDoctor) (uuid.UUID, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, apperror.Internal(err)
	}
	defer tx.Rollback()

	var userID uuid.UUID
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO users (citizen_id, first_name, last_name, email, phone, password)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING user_id
	`, d.CitizenID, d.FirstName, d.LastName, d.Email, d.Phone, d.PasswordHash).Scan(&userID)
	if err != nil {
		return uuid.Nil, apperror.FromDB(err, "user")
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO doctor_profile (user_id, mln)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET mln = EXCLUDED.mln
	`, userID, d.MLN)
	if err != nil {
		return uuid.Nil, apperror.FromDB(err, "doctor profile")
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_roles (user_id, role) VALUES ($1, 'DOCTOR')
		ON CONFLICT DO NOTHING
	`, userID)
	if err != nil {
		return uuid.Nil, apperror.FromDB(err, "user role")
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, apperror.Internal(err)
	}
	return userID, nil
}

func (r *authRepository) PatientCredential(ctx context.Context, hn int, citizenID string) (*model.Credential, error) {
	var cred model.Credential
	err := r.db.GetContext(ctx, &cred, `
		SELECT u.user_id, u.password
		FROM users u
		JOIN patient_profile p ON p.user_id = u.user_id
		WHERE p.hn = $1 AND u.citizen_id = $2
	`, hn, citizenID)
	if err != nil {
		return nil, apperror.FromDB(err, "credential")
	}
	return &cred, nil
}

func (r *authRepository) DoctorCredential(ctx context.Context, mln, citizenID string) (*model.Credential, error) {
	var cred model.Credential
	err := r.db.GetContext(ctx, &cred, `
		SELECT u.user_id, u.password
		FROM users u
		JOIN doctor_profile d ON d.user_id = u.user_id
		WHERE d.mln = $1 AND u.citizen_id = $2
	`, mln, citizenID)
	if err != nil {
		return nil, apperror.FromDB(err, "credential")
	}
	return &cred, nil
}

func (r *authRepository) PatientProfile(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error) {
	var profile model.PatientProfile
	err := r.db.GetContext(ctx, &profile, `
		SELECT first_name, last_name, email, phone, updated_at
		FROM users
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, apperror.FromDB(err, "patient profile")
	}
	return &profile, nil
}

func (r *authRepository) DoctorProfile(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error) {
	var profile model.DoctorProfile
	err := r.db.GetContext(ctx, &profile, `
		SELECT u.first_name, u.last_name, u.email, u.phone,
		       COALESCE(dp.department, '') AS department,
		       COALESCE(dp.position, '') AS position
		FROM users u
		JOIN doctor_profile dp ON dp.user_id = u.user_id
		WHERE u.user_id = $1
	`, userID)
	if err != nil {
		return nil, apperror.FromDB(err, "doctor profile")
	}
	return &profile, nil
}

func (r *authRepository) UpsertMedicalRights(ctx context.Context, items []model.MedicalRight) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperror.Internal(err)
	}
	defer tx.Rollback()

	for _, item := range items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO medical_rights (mr_id, name, details, img_url)
			OVERRIDING SYSTEM VALUE
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (mr_id) DO UPDATE
			SET name = EXCLUDED.name,
			    details = EXCLUDED.details,
			    img_url = EXCLUDED.img_url
		`, item.MRID, item.Name, item.Details, item.ImageURL)
		if err != nil {
			return apperror.FromDB(err, "medical right")
		}
	}

	if err := tx.Commit(); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *authRepository) ListUserMedicalRights(ctx context.Context, userID uuid.UUID) ([]model.MedicalRight, error) {
	rights := []model.MedicalRight{}
	err := r.db.SelectContext(ctx, &rights, `
		SELECT mr.mr_id, mr.name, mr.details, mr.img_url
		FROM medical_rights mr
		JOIN user_medical_rights umr ON umr.mr_id = mr.mr_id
		WHERE umr.user_id = $1
		ORDER BY mr.mr_id
	`, userID)
	if err != nil {
		return nil, apperror.FromDB(err, "medical rights")
	}
	return rights, nil
}
