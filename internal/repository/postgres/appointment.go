package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/pkg/apperror"
)

func (r *appointmentRepository) FindTimeSlot(ctx context.Context, doctorID uuid.UUID, dayOfWeek int, startTime, endTime string) (int, error) {
	var timeslotID int
	err := r.db.GetContext(ctx, &timeslotID, `
		SELECT timeslot_id
		FROM time_slots
		WHERE doctor_id = $1
		  AND day_of_weeks = $2
		  AND start_time = $3::time
		  AND end_time = $4::time
	`, doctorID, dayOfWeek, startTime, endTime)
	if err != nil {
		return 0, apperror.FromDB(err, "time slot")
	}
	return timeslotID, nil
}

func (r *appointmentRepository) Create(ctx context.Context, cmd *model.NewAppointment) (*model.Appointment, error) {
	var appt model.Appointment
	err := r.db.GetContext(ctx, &appt, `
		INSERT INTO appointments (patient_id, timeslot_id, date)
		VALUES ($1, $2, $3)
		RETURNING appointment_id, patient_id, timeslot_id, date, status, created_at
	`, cmd.PatientID, cmd.TimeslotID, cmd.Date)
	if err != nil {
		return nil, apperror.FromDB(err, "appointment")
	}
	return &appt, nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int) (*model.Appointment, error) {
	var appt model.Appointment
	err := r.db.GetContext(ctx, &appt, `
		SELECT appointment_id, patient_id, timeslot_id, date, status, created_at
		FROM appointments
		WHERE appointment_id = $1
	`, id)
	if err != nil {
		return nil, apperror.FromDB(err, "appointment")
	}
	return &appt, nil
}

func (r *appointmentRepository) Access(ctx context.Context, id int) (*model.AppointmentAccess, error) {
	var access model.AppointmentAccess
	err := r.db.GetContext(ctx, &access, `
		SELECT a.patient_id, ts.doctor_id
		FROM appointments a
		JOIN time_slots ts ON ts.timeslot_id = a.timeslot_id
		WHERE a.appointment_id = $1
	`, id)
	if err != nil {
		return nil, apperror.FromDB(err, "appointment")
	}
	return &access, nil
}

const patientOverviewSelect = `
	SELECT
		a.appointment_id,
		concat_ws(' ', u.first_name, u.last_name) AS doctor_name,
		dp.department,
		ts.place_name,
		to_char(a.date, 'YYYY-MM-DD') AS date,
		to_char(ts.start_time, 'HH24:MI') AS start_time,
		to_char(ts.end_time, 'HH24:MI') AS end_time,
		a.status
	FROM appointments a
	JOIN time_slots ts ON ts.timeslot_id = a.timeslot_id
	JOIN users u ON u.user_id = ts.doctor_id
	LEFT JOIN doctor_profile dp ON dp.user_id = ts.doctor_id
`

func (r *appointmentRepository) ListPatientUpcoming(ctx context.Context, patientID uuid.UUID, today time.Time) ([]model.AppointmentOverview, error) {
	rows := []model.AppointmentOverview{}
	err := r.db.SelectContext(ctx, &rows, patientOverviewSelect+`
		WHERE a.patient_id = $1
		  AND a.status IN ('PENDING', 'ACCEPTED')
		  AND a.date >= $2
		ORDER BY a.date, ts.start_time
	`, patientID, today)
	if err != nil {
		return nil, apperror.FromDB(err, "appointments")
	}
	return rows, nil
}

func (r *appointmentRepository) ListPatientOthers(ctx context.Context, patientID uuid.UUID, today time.Time) ([]model.AppointmentOverview, error) {
	rows := []model.AppointmentOverview{}
	err := r.db.SelectContext(ctx, &rows, patientOverviewSelect+`
		WHERE a.patient_id = $1
		  AND (
		        a.status IN ('CANCELED', 'REJECTED')
		     OR (a.status = 'ACCEPTED' AND a.date < $2)
		  )
		ORDER BY a.date DESC, ts.start_time
	`, patientID, today)
	if err != nil {
		return nil, apperror.FromDB(err, "appointments")
	}
	return rows, nil
}

func (r *appointmentRepository) ListPatientByDate(ctx context.Context, patientID uuid.UUID, date time.Time) ([]model.AppointmentOverview, error) {
	rows := []model.AppointmentOverview{}
	err := r.db.SelectContext(ctx, &rows, patientOverviewSelect+`
		WHERE a.patient_id = $1
		  AND a.status = 'ACCEPTED'
		  AND a.date = $2
		ORDER BY ts.start_time
	`, patientID, date)
	if err != nil {
		return nil, apperror.FromDB(err, "appointments")
	}
	return rows, nil
}

func (r *appointmentRepository) ListDoctors(ctx context.Context) ([]model.DoctorListItem, error) {
	rows := []model.DoctorListItem{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT
			u.user_id AS doctor_id,
			concat_ws(' ', u.first_name, u.last_name) AS doctor_name,
			dp.department
		FROM users u
		JOIN user_roles ur ON ur.user_id = u.user_id AND ur.role = 'DOCTOR'
		LEFT JOIN doctor_profile dp ON dp.user_id = u.user_id
		ORDER BY doctor_name
	`)
	if err != nil {
		return nil, apperror.FromDB(err, "doctors")
	}
	return rows, nil
}

func (r *appointmentRepository) ListDoctorTimeSlots(ctx context.Context, doctorID uuid.UUID) ([]model.DoctorTimeSlotView, error) {
	rows := []model.DoctorTimeSlotView{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT
			timeslot_id,
			day_of_weeks,
			place_name,
			to_char(start_time, 'HH24:MI') AS start_time,
			to_char(end_time, 'HH24:MI') AS end_time
		FROM time_slots
		WHERE doctor_id = $1
		ORDER BY day_of_weeks, start_time
	`, doctorID)
	if err != nil {
		return nil, apperror.FromDB(err, "time slots")
	}
	return rows, nil
}

const doctorViewSelect = `
	SELECT
		a.appointment_id,
		a.patient_id,
		concat_ws(' ', up.first_name, up.last_name) AS patient_name,
		to_char(a.date, 'YYYY-MM-DD') AS date,
		to_char(ts.start_time, 'HH24:MI') AS start_time,
		to_char(ts.end_time, 'HH24:MI') AS end_time,
		a.status
	FROM appointments a
	JOIN time_slots ts ON ts.timeslot_id = a.timeslot_id
	JOIN users up ON up.user_id = a.patient_id
`

func (r *appointmentRepository) ListDoctorSchedule(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]model.DoctorAppointmentView, error) {
	rows := []model.DoctorAppointmentView{}
	err := r.db.SelectContext(ctx, &rows, doctorViewSelect+`
		WHERE ts.doctor_id = $1
		  AND a.date = $2
		ORDER BY ts.start_time
	`, doctorID, date)
	if err != nil {
		return nil, apperror.FromDB(err, "appointments")
	}
	return rows, nil
}

func (r *appointmentRepository) ListDoctorPending(ctx context.Context, doctorID uuid.UUID) ([]model.DoctorAppointmentView, error) {
	rows := []model.DoctorAppointmentView{}
	err := r.db.SelectContext(ctx, &rows, doctorViewSelect+`
		WHERE ts.doctor_id = $1
		  AND a.status = 'PENDING'
		ORDER BY a.date, ts.start_time
	`, doctorID)
	if err != nil {
		return nil, apperror.FromDB(err, "appointments")
	}
	return rows, nil
}

func (r *appointmentRepository) ListDoctorAssessed(ctx context.Context, doctorID uuid.UUID) ([]model.DoctorAppointmentView, error) {
	rows := []model.DoctorAppointmentView{}
	err := r.db.SelectContext(ctx, &rows, doctorViewSelect+`
		WHERE ts.doctor_id = $1
		  AND a.status <> 'PENDING'
		ORDER BY a.date DESC, ts.start_time
	`, doctorID)
	if err != nil {
		return nil, apperror.FromDB(err, "appointments")
	}
	return rows, nil
}

func statusStrings(statuses []model.AppointmentStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func (r *appointmentRepository) UpdateStatusByPatient(ctx context.Context, id int, patientID uuid.UUID, from []model.AppointmentStatus, to model.AppointmentStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET status = $3
		WHERE appointment_id = $1
		  AND patient_id = $2
		  AND status = ANY($4)
	`, id, patientID, to, pq.Array(statusStrings(from)))
	if err != nil {
		return false, apperror.FromDB(err, "appointment")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperror.Internal(err)
	}
	return n > 0, nil
}

func (r *appointmentRepository) UpdateStatusByDoctor(ctx context.Context, id int, doctorID uuid.UUID, from []model.AppointmentStatus, to model.AppointmentStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments a
		SET status = $3
		FROM time_slots ts
		WHERE a.appointment_id = $1
		  AND a.timeslot_id = ts.timeslot_id
		  AND ts.doctor_id = $2
		  AND a.status = ANY($4)
	`, id, doctorID, to, pq.Array(statusStrings(from)))
	if err != nil {
		return false, apperror.FromDB(err, "appointment")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperror.Internal(err)
	}
	return n > 0, nil
}

func (r *appointmentRepository) StatusForPatient(ctx context.Context, id int, patientID uuid.UUID) (model.AppointmentStatus, error) {
	var status model.AppointmentStatus
	err := r.db.GetContext(ctx, &status, `
		SELECT status FROM appointments
		WHERE appointment_id = $1 AND patient_id = $2
	`, id, patientID)
	if err != nil {
		return "", apperror.FromDB(err, "appointment")
	}
	return status, nil
}

func (r *appointmentRepository) StatusForDoctor(ctx context.Context, id int, doctorID uuid.UUID) (model.AppointmentStatus, error) {
	var status model.AppointmentStatus
	err := r.db.GetContext(ctx, &status, `
		SELECT a.status
		FROM appointments a
		JOIN time_slots ts ON ts.timeslot_id = a.timeslot_id
		WHERE a.appointment_id = $1 AND ts.doctor_id = $2
	`, id, doctorID)
	if err != nil {
		return "", apperror.FromDB(err, "appointment")
	}
	return status, nil
}

func (r *appointmentRepository) DecisionNotice(ctx context.Context, id int) (*model.AppointmentNotice, error) {
	var notice model.AppointmentNotice
	err := r.db.GetContext(ctx, &notice, `
		SELECT
			u.email AS patient_email,
			concat_ws(' ', u.first_name, u.last_name) AS patient_name,
			to_char(a.date, 'YYYY-MM-DD') AS date,
			to_char(ts.start_time, 'HH24:MI') AS start_time
		FROM appointments a
		JOIN time_slots ts ON ts.timeslot_id = a.timeslot_id
		JOIN users u ON u.user_id = a.patient_id
		WHERE a.appointment_id = $1
	`, id)
	if err != nil {
		return nil, apperror.FromDB(err, "appointment")
	}
	return &notice, nil
}

func (r *appointmentRepository) DeleteByPatient(ctx context.Context, id int, patientID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM appointments
		WHERE appointment_id = $1 AND patient_id = $2
	`, id, patientID)
	if err != nil {
		return false, apperror.FromDB(err, "appointment")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperror.Internal(err)
	}
	return n > 0, nil
}

func (r *appointmentRepository) UpdateTimeSlot(ctx context.Context, id int, doctorID uuid.UUID, req *model.UpdateTimeSlotRequest) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE time_slots
		SET day_of_weeks = $3,
		    place_name = $4,
		    start_time = $5::time,
		    end_time = $6::time
		WHERE timeslot_id = $1
		  AND doctor_id = $2
	`, id, doctorID, req.DayOfWeek, req.PlaceName, req.StartTime, req.EndTime)
	if err != nil {
		return false, apperror.FromDB(err, "time slot")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperror.Internal(err)
	}
	return n > 0, nil
}

func (r *appointmentRepository) DeleteTimeSlot(ctx context.Context, id int, doctorID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM time_slots
		WHERE timeslot_id = $1 AND doctor_id = $2
	`, id, doctorID)
	if err != nil {
		return false, apperror.FromDB(err, "time slot")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperror.Internal(err)
	}
	return n > 0, nil
}
