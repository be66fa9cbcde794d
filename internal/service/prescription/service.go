package prescription

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
	"github.com/clinicore/clinic-api/pkg/apperror"
)

type Service struct {
	repo repository.PrescriptionRepository
}

func NewService(repo repository.PrescriptionRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]model.Prescription, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) SearchMedicines(ctx context.Context, name string) ([]model.MedicineSearchItem, error) {
	return s.repo.SearchMedicines(ctx, name)
}

func (s *Service) MedicineInfo(ctx context.Context, medicineID int) (*model.MedicineInfo, error) {
	return s.repo.MedicineInfo(ctx, medicineID)
}

func (s *Service) Create(ctx context.Context, req *model.CreatePrescriptionRequest) (int, error) {
	if req.Amount <= 0 {
		return 0, apperror.BadRequest("amount must be positive")
	}
	return s.repo.Create(ctx, req)
}

func (s *Service) Update(ctx context.Context, prescriptionID int, req *model.UpdatePrescriptionRequest) error {
	if req.Amount <= 0 {
		return apperror.BadRequest("amount must be positive")
	}
	updated, err := s.repo.Update(ctx, prescriptionID, req)
	if err != nil {
		return err
	}
	if !updated {
		return apperror.NotFound("prescription")
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, prescriptionID int) error {
	deleted, err := s.repo.Delete(ctx, prescriptionID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("prescription")
	}
	return nil
}
