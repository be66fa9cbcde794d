package diagnosis

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/pkg/apperror"
)

type fakeDiagnosisRepo struct {
	entries map[uuid.UUID][]model.DiagnosisEntry
	parties map[int]*model.AppointmentAccess
	created []string
	updated map[int]bool
}

func newFakeDiagnosisRepo() *fakeDiagnosisRepo {
	return &fakeDiagnosisRepo{
		entries: make(map[uuid.UUID][]model.DiagnosisEntry),
		parties: make(map[int]*model.AppointmentAccess),
		updated: make(map[int]bool),
	}
}

func (r *fakeDiagnosisRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]model.DiagnosisEntry, error) {
	return r.entries[patientID], nil
}

func (r *fakeDiagnosisRepo) HealthInfo(context.Context, uuid.UUID) (*model.PatientHealthInfo, error) {
	return &model.PatientHealthInfo{}, nil
}

func (r *fakeDiagnosisRepo) AppointmentParties(_ context.Context, appointmentID int) (*model.AppointmentAccess, error) {
	parties, ok := r.parties[appointmentID]
	if !ok {
		return nil, apperror.NotFound("appointment")
	}
	return parties, nil
}

func (r *fakeDiagnosisRepo) Create(_ context.Context, _ int, _, _ uuid.UUID, symptom string) error {
	r.created = append(r.created, symptom)
	return nil
}

func (r *fakeDiagnosisRepo) UpdateSymptom(_ context.Context, diagnosisID int, _ string) (bool, error) {
	return r.updated[diagnosisID], nil
}

func TestHistory(t *testing.T) {
	repo := newFakeDiagnosisRepo()
	patientID := uuid.New()
	repo.entries[patientID] = []model.DiagnosisEntry{{ID: 1, Symptom: "seasonal rhinitis"}}

	svc := NewService(repo)
	rows, err := svc.History(context.Background(), patientID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestHistoryEmpty(t *testing.T) {
	svc := NewService(newFakeDiagnosisRepo())
	_, err := svc.History(context.Background(), uuid.New())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestCreate(t *testing.T) {
	repo := newFakeDiagnosisRepo()
	patientID := uuid.New()
	doctorID := uuid.New()
	repo.parties[10] = &model.AppointmentAccess{PatientID: patientID, DoctorID: doctorID}

	svc := NewService(repo)
	err := svc.Create(context.Background(), doctorID, patientID, &model.CreateDiagnosisRequest{
		AppointmentID: 10,
		Symptom:       "persistent cough",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"persistent cough"}, repo.created)
}

func TestCreatePartyMismatch(t *testing.T) {
	repo := newFakeDiagnosisRepo()
	patientID := uuid.New()
	doctorID := uuid.New()
	repo.parties[10] = &model.AppointmentAccess{PatientID: patientID, DoctorID: doctorID}

	svc := NewService(repo)

	err := svc.Create(context.Background(), uuid.New(), patientID, &model.CreateDiagnosisRequest{AppointmentID: 10, Symptom: "x"})
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err), "wrong doctor")

	err = svc.Create(context.Background(), doctorID, uuid.New(), &model.CreateDiagnosisRequest{AppointmentID: 10, Symptom: "x"})
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err), "wrong patient")

	assert.Empty(t, repo.created)
}

func TestCreateMissingAppointment(t *testing.T) {
	svc := NewService(newFakeDiagnosisRepo())
	err := svc.Create(context.Background(), uuid.New(), uuid.New(), &model.CreateDiagnosisRequest{AppointmentID: 99, Symptom: "x"})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestUpdate(t *testing.T) {
	repo := newFakeDiagnosisRepo()
	repo.updated[5] = true

	svc := NewService(repo)
	assert.NoError(t, svc.Update(context.Background(), 5, &model.UpdateDiagnosisRequest{Symptom: "resolved"}))

	err := svc.Update(context.Background(), 6, &model.UpdateDiagnosisRequest{Symptom: "resolved"})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
