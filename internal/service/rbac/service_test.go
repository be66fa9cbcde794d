package rbac

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/pkg/apperror"
)

type fakeRoleRepo struct {
	grants map[uuid.UUID][]model.Role
	calls  int
	err    error
}

func (r *fakeRoleRepo) HasRole(_ context.Context, userID uuid.UUID, role model.Role) (bool, error) {
	r.calls++
	if r.err != nil {
		return false, r.err
	}
	for _, g := range r.grants[userID] {
		if g == role {
			return true, nil
		}
	}
	return false, nil
}

func TestRequireRole(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRoleRepo{grants: map[uuid.UUID][]model.Role{
		userID: {model.RolePatient},
	}}
	svc := NewService(repo)

	assert.NoError(t, svc.RequireRole(context.Background(), userID, model.RolePatient))

	err := svc.RequireRole(context.Background(), userID, model.RoleDoctor)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	err = svc.RequireRole(context.Background(), uuid.New(), model.RolePatient)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}

func TestRequireRoleQueriesEveryCall(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRoleRepo{grants: map[uuid.UUID][]model.Role{
		userID: {model.RolePatient},
	}}
	svc := NewService(repo)

	// A revoked grant must stop working on the very next check, so the
	// service may never answer from memory.
	for i := 0; i < 3; i++ {
		assert.NoError(t, svc.RequireRole(context.Background(), userID, model.RolePatient))
	}
	assert.Equal(t, 3, repo.calls)

	repo.grants = nil
	err := svc.RequireRole(context.Background(), userID, model.RolePatient)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}

func TestRequireRolePropagatesLookupError(t *testing.T) {
	repo := &fakeRoleRepo{err: assert.AnError}
	svc := NewService(repo)

	err := svc.RequireRole(context.Background(), uuid.New(), model.RolePatient)
	assert.ErrorIs(t, err, assert.AnError)
}
