package rbac

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
	"github.com/clinicore/clinic-api/pkg/apperror"
)

// Service is the role guard. Every check queries user_roles directly so
// grants and revocations apply on the next request.
type Service struct {
	repo repository.RoleRepository
}

func NewService(repo repository.RoleRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) HasRole(ctx context.Context, userID uuid.UUID, role model.Role) (bool, error) {
	return s.repo.HasRole(ctx, userID, role)
}

// RequireRole returns Forbidden when the user lacks the role. Handlers
// call this before touching any other state.
func (s *Service) RequireRole(ctx context.Context, userID uuid.UUID, role model.Role) error {
	ok, err := s.repo.HasRole(ctx, userID, role)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Forbidden()
	}
	return nil
}
