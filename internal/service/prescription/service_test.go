package prescription

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/pkg/apperror"
)

type fakePrescriptionRepo struct {
	existing map[int]bool
	created  int
	nextID   int
}

func newFakePrescriptionRepo() *fakePrescriptionRepo {
	return &fakePrescriptionRepo{existing: make(map[int]bool), nextID: 1}
}

func (r *fakePrescriptionRepo) ListByPatient(context.Context, uuid.UUID) ([]model.Prescription, error) {
	return nil, nil
}

func (r *fakePrescriptionRepo) SearchMedicines(context.Context, string) ([]model.MedicineSearchItem, error) {
	return nil, nil
}

func (r *fakePrescriptionRepo) MedicineInfo(context.Context, int) (*model.MedicineInfo, error) {
	return &model.MedicineInfo{}, nil
}

func (r *fakePrescriptionRepo) Create(context.Context, *model.CreatePrescriptionRequest) (int, error) {
	r.created++
	id := r.nextID
	r.nextID++
	r.existing[id] = true
	return id, nil
}

func (r *fakePrescriptionRepo) Update(_ context.Context, prescriptionID int, _ *model.UpdatePrescriptionRequest) (bool, error) {
	return r.existing[prescriptionID], nil
}

func (r *fakePrescriptionRepo) Delete(_ context.Context, prescriptionID int) (bool, error) {
	if !r.existing[prescriptionID] {
		return false, nil
	}
	delete(r.existing, prescriptionID)
	return true, nil
}

func TestCreatePrescription(t *testing.T) {
	repo := newFakePrescriptionRepo()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), &model.CreatePrescriptionRequest{
		MedicineID: 3,
		PatientID:  uuid.New(),
		Dosage:     "1 tablet after meals",
		Amount:     30,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, id)
}

func TestCreatePrescriptionRejectsNonPositiveAmount(t *testing.T) {
	repo := newFakePrescriptionRepo()
	svc := NewService(repo)

	for _, amount := range []int{0, -1} {
		_, err := svc.Create(context.Background(), &model.CreatePrescriptionRequest{
			MedicineID: 3, PatientID: uuid.New(), Dosage: "x", Amount: amount,
		})
		assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
	}
	assert.Zero(t, repo.created)
}

func TestUpdatePrescription(t *testing.T) {
	repo := newFakePrescriptionRepo()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), &model.CreatePrescriptionRequest{
		MedicineID: 3, PatientID: uuid.New(), Dosage: "x", Amount: 10,
	})
	require.NoError(t, err)

	req := &model.UpdatePrescriptionRequest{MedicineID: 3, PatientID: uuid.New(), Dosage: "y", Amount: 20}
	assert.NoError(t, svc.Update(context.Background(), id, req))

	err = svc.Update(context.Background(), id+1, req)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	req.Amount = 0
	err = svc.Update(context.Background(), id, req)
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
}

func TestDeletePrescription(t *testing.T) {
	repo := newFakePrescriptionRepo()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), &model.CreatePrescriptionRequest{
		MedicineID: 3, PatientID: uuid.New(), Dosage: "x", Amount: 10,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), id))

	err = svc.Delete(context.Background(), id)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
