package diagnosis

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
	"github.com/clinicore/clinic-api/pkg/apperror"
)

type Service struct {
	repo repository.DiagnosisRepository
}

func NewService(repo repository.DiagnosisRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) History(ctx context.Context, patientID uuid.UUID) ([]model.DiagnosisEntry, error) {
	rows, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperror.NotFound("diagnoses")
	}
	return rows, nil
}

func (s *Service) HealthInfo(ctx context.Context, patientID uuid.UUID) (*model.PatientHealthInfo, error) {
	return s.repo.HealthInfo(ctx, patientID)
}

// Create records a diagnosis against an appointment after verifying the
// appointment actually joins this (patient, doctor) pair.
func (s *Service) Create(ctx context.Context, doctorID, patientID uuid.UUID, req *model.CreateDiagnosisRequest) error {
	parties, err := s.repo.AppointmentParties(ctx, req.AppointmentID)
	if err != nil {
		return err
	}
	if parties.PatientID != patientID || parties.DoctorID != doctorID {
		return apperror.Forbidden()
	}
	return s.repo.Create(ctx, req.AppointmentID, patientID, doctorID, req.Symptom)
}

func (s *Service) Update(ctx context.Context, diagnosisID int, req *model.UpdateDiagnosisRequest) error {
	updated, err := s.repo.UpdateSymptom(ctx, diagnosisID, req.Symptom)
	if err != nil {
		return err
	}
	if !updated {
		return apperror.NotFound("diagnosis")
	}
	return nil
}
