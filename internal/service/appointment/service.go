package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinicore/clinic-api/internal/email"
	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
	"github.com/clinicore/clinic-api/pkg/apperror"
)

type Service struct {
	repo     repository.AppointmentRepository
	roles    repository.RoleRepository
	emailSvc email.Service
	logger   zerolog.Logger
	now      func() time.Time
}

func NewService(repo repository.AppointmentRepository, roles repository.RoleRepository, emailSvc email.Service, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		roles:    roles,
		emailSvc: emailSvc,
		logger:   logger,
		now:      time.Now,
	}
}

// Book matches the requested window against the doctor's recurring
// slots and inserts a PENDING appointment. Double-booking is left to
// the DB constraint and surfaces as Conflict.
func (s *Service) Book(ctx context.Context, patientID uuid.UUID, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	start, err := ParseClock(req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseClock(req.EndTime)
	if err != nil {
		return nil, err
	}
	if start >= end {
		return nil, apperror.BadRequest("start_time must be before end_time")
	}

	timeslotID, err := s.repo.FindTimeSlot(ctx, req.DoctorID, int(date.Weekday()), start, end)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, &model.NewAppointment{
		PatientID:  patientID,
		TimeslotID: timeslotID,
		Date:       date,
	})
}

// Get enforces read access: the owning patient always may read; the
// slot's doctor needs the DOCTOR role; anyone else needs ADMIN.
func (s *Service) Get(ctx context.Context, userID uuid.UUID, id int) (*model.Appointment, error) {
	access, err := s.repo.Access(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := access.PatientID == userID
	if !allowed && access.DoctorID == userID {
		allowed, err = s.roles.HasRole(ctx, userID, model.RoleDoctor)
		if err != nil {
			return nil, err
		}
	}
	if !allowed {
		allowed, err = s.roles.HasRole(ctx, userID, model.RoleAdmin)
		if err != nil {
			return nil, err
		}
	}
	if !allowed {
		return nil, apperror.Forbidden()
	}

	return s.repo.Get(ctx, id)
}

func (s *Service) PatientUpcoming(ctx context.Context, patientID uuid.UUID) ([]model.AppointmentOverview, error) {
	return s.repo.ListPatientUpcoming(ctx, patientID, s.today())
}

func (s *Service) PatientOthers(ctx context.Context, patientID uuid.UUID) ([]model.AppointmentOverview, error) {
	return s.repo.ListPatientOthers(ctx, patientID, s.today())
}

func (s *Service) PatientByDate(ctx context.Context, patientID uuid.UUID, dateStr string) ([]model.AppointmentOverview, error) {
	date, err := ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	return s.repo.ListPatientByDate(ctx, patientID, date)
}

func (s *Service) ListDoctors(ctx context.Context) ([]model.DoctorListItem, error) {
	return s.repo.ListDoctors(ctx)
}

func (s *Service) DoctorTimeSlots(ctx context.Context, doctorID uuid.UUID) ([]model.DoctorTimeSlotView, error) {
	return s.repo.ListDoctorTimeSlots(ctx, doctorID)
}

func (s *Service) DoctorSchedule(ctx context.Context, doctorID uuid.UUID, dateStr string) ([]model.DoctorAppointmentView, error) {
	date, err := ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListDoctorSchedule(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	return withStatusCodes(rows), nil
}

func (s *Service) DoctorPending(ctx context.Context, doctorID uuid.UUID) ([]model.DoctorAppointmentView, error) {
	rows, err := s.repo.ListDoctorPending(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return withStatusCodes(rows), nil
}

func (s *Service) DoctorAssessed(ctx context.Context, doctorID uuid.UUID) ([]model.DoctorAppointmentView, error) {
	rows, err := s.repo.ListDoctorAssessed(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return withStatusCodes(rows), nil
}

// Cancel moves a PENDING or ACCEPTED appointment to CANCELED for the
// owning patient. A row the patient owns that is already settled yields
// Conflict; an absent or foreign row yields NotFound.
func (s *Service) Cancel(ctx context.Context, patientID uuid.UUID, id int) error {
	updated, err := s.repo.UpdateStatusByPatient(ctx, id, patientID,
		[]model.AppointmentStatus{model.AppointmentStatusPending, model.AppointmentStatusAccepted},
		model.AppointmentStatusCanceled)
	if err != nil {
		return err
	}
	if updated {
		return nil
	}
	if _, err := s.repo.StatusForPatient(ctx, id, patientID); err != nil {
		return err
	}
	return apperror.Conflict("appointment is no longer cancelable")
}

// Decide resolves a PENDING appointment to ACCEPTED or REJECTED on
// behalf of the slot's doctor, then notifies the patient best-effort.
func (s *Service) Decide(ctx context.Context, doctorID uuid.UUID, id int, to model.AppointmentStatus) error {
	if to != model.AppointmentStatusAccepted && to != model.AppointmentStatusRejected {
		return apperror.BadRequest("action must be accept or reject")
	}
	updated, err := s.repo.UpdateStatusByDoctor(ctx, id, doctorID,
		[]model.AppointmentStatus{model.AppointmentStatusPending}, to)
	if err != nil {
		return err
	}
	if !updated {
		if _, err := s.repo.StatusForDoctor(ctx, id, doctorID); err != nil {
			return err
		}
		return apperror.Conflict("appointment has already been assessed")
	}

	s.notifyDecision(ctx, id, to)
	return nil
}

func (s *Service) notifyDecision(ctx context.Context, id int, to model.AppointmentStatus) {
	notice, err := s.repo.DecisionNotice(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Int("appointment_id", id).Msg("failed to load notification details")
		return
	}
	if notice.PatientEmail == "" {
		return
	}
	err = s.emailSvc.SendAppointmentDecision(ctx, notice.PatientEmail, notice.PatientName, to, notice.Date, notice.StartTime)
	if err != nil {
		s.logger.Warn().Err(err).Int("appointment_id", id).Msg("failed to send decision notification")
	}
}

// Delete removes the patient's appointment outright, whatever its state.
func (s *Service) Delete(ctx context.Context, patientID uuid.UUID, id int) error {
	deleted, err := s.repo.DeleteByPatient(ctx, id, patientID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("appointment")
	}
	return nil
}

func (s *Service) UpdateTimeSlot(ctx context.Context, doctorID uuid.UUID, id int, req *model.UpdateTimeSlotRequest) error {
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return apperror.BadRequest("day_of_weeks must be between 0 and 6")
	}
	start, err := ParseClock(req.StartTime)
	if err != nil {
		return err
	}
	end, err := ParseClock(req.EndTime)
	if err != nil {
		return err
	}
	if start >= end {
		return apperror.BadRequest("start_time must be before end_time")
	}

	normalized := *req
	normalized.StartTime = start
	normalized.EndTime = end
	updated, err := s.repo.UpdateTimeSlot(ctx, id, doctorID, &normalized)
	if err != nil {
		return err
	}
	if !updated {
		return apperror.NotFound("time slot")
	}
	return nil
}

func (s *Service) DeleteTimeSlot(ctx context.Context, doctorID uuid.UUID, id int) error {
	deleted, err := s.repo.DeleteTimeSlot(ctx, id, doctorID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("time slot")
	}
	return nil
}

func (s *Service) today() time.Time {
	return s.now().UTC().Truncate(24 * time.Hour)
}

func withStatusCodes(rows []model.DoctorAppointmentView) []model.DoctorAppointmentView {
	for i := range rows {
		rows[i].StatusCode = rows[i].Status.StatusCode()
	}
	return rows
}

// ParseDate accepts YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, apperror.BadRequest("date must be in YYYY-MM-DD format")
	}
	return date, nil
}

// ParseClock accepts HH:MM or HH:MM:SS and normalizes to HH:MM.
func ParseClock(value string) (string, error) {
	t, err := time.Parse("15:04:05", value)
	if err != nil {
		t, err = time.Parse("15:04", value)
	}
	if err != nil {
		return "", apperror.BadRequest("time must be in HH:MM or HH:MM:SS format")
	}
	return t.Format("15:04"), nil
}
