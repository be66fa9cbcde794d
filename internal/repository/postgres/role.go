package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/pkg/apperror"
)

// HasRole hits user_roles on every call. No caching: a revoked role
// must stop working on the very next request.
func (r *roleRepository) HasRole(ctx context.Context, userID uuid.UUID, role model.Role) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2
		)
	`, userID, role)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return exists, nil
}
