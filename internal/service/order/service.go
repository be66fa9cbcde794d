package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
	"github.com/clinicore/clinic-api/pkg/apperror"
)

type Service struct {
	repo repository.OrderRepository
}

func NewService(repo repository.OrderRepository) *Service {
	return &Service{repo: repo}
}

// List returns each order with its items and tot_price computed as
// Σ quantity × unit_price.
func (s *Service) List(ctx context.Context, patientID uuid.UUID) ([]model.OrderDetail, error) {
	return s.repo.ListDetails(ctx, patientID)
}

func (s *Service) Create(ctx context.Context, patientID uuid.UUID, req *model.CreateOrderRequest) (int, error) {
	for _, item := range req.Items {
		if item.Amount <= 0 {
			return 0, apperror.BadRequest("amount must be positive")
		}
	}
	return s.repo.Create(ctx, patientID, req)
}

// Confirm moves the patient's PENDING order to SHIPPING.
func (s *Service) Confirm(ctx context.Context, patientID uuid.UUID, orderID int) error {
	confirmed, err := s.repo.Confirm(ctx, patientID, orderID)
	if err != nil {
		return err
	}
	if !confirmed {
		return apperror.NotFound("order")
	}
	return nil
}
