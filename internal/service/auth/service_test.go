package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/pkg/apperror"
	"github.com/clinicore/clinic-api/pkg/token"
)

type patientKey struct {
	hn        int
	citizenID string
}

type fakeAuthRepo struct {
	patients  map[patientKey]*model.Credential
	doctors   map[string]*model.Credential
	created   []*model.NewPatient
	createErr error
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{
		patients: make(map[patientKey]*model.Credential),
		doctors:  make(map[string]*model.Credential),
	}
}

func (r *fakeAuthRepo) CreatePatient(_ context.Context, p *model.NewPatient) (uuid.UUID, error) {
	if r.createErr != nil {
		return uuid.Nil, r.createErr
	}
	r.created = append(r.created, p)
	id := uuid.New()
	r.patients[patientKey{p.HN, p.CitizenID}] = &model.Credential{UserID: id, PasswordHash: p.PasswordHash}
	return id, nil
}

func (r *fakeAuthRepo) CreateDoctor(_ context.Context, d *model.NewDoctor) (uuid.UUID, error) {
	if r.createErr != nil {
		return uuid.Nil, r.createErr
	}
	id := uuid.New()
	r.doctors[d.MLN+"/"+d.CitizenID] = &model.Credential{UserID: id, PasswordHash: d.PasswordHash}
	return id, nil
}

func (r *fakeAuthRepo) PatientCredential(_ context.Context, hn int, citizenID string) (*model.Credential, error) {
	cred, ok := r.patients[patientKey{hn, citizenID}]
	if !ok {
		return nil, apperror.NotFound("user")
	}
	return cred, nil
}

func (r *fakeAuthRepo) DoctorCredential(_ context.Context, mln, citizenID string) (*model.Credential, error) {
	cred, ok := r.doctors[mln+"/"+citizenID]
	if !ok {
		return nil, apperror.NotFound("user")
	}
	return cred, nil
}

func (r *fakeAuthRepo) PatientProfile(context.Context, uuid.UUID) (*model.PatientProfile, error) {
	return &model.PatientProfile{}, nil
}

func (r *fakeAuthRepo) DoctorProfile(context.Context, uuid.UUID) (*model.DoctorProfile, error) {
	return &model.DoctorProfile{}, nil
}

func (r *fakeAuthRepo) UpsertMedicalRights(context.Context, []model.MedicalRight) error {
	return nil
}

func (r *fakeAuthRepo) ListUserMedicalRights(context.Context, uuid.UUID) ([]model.MedicalRight, error) {
	return nil, nil
}

func newTestService(repo *fakeAuthRepo) (*Service, *token.Authority) {
	authority := token.NewAuthority("test-secret")
	return NewService(repo, authority), authority
}

func TestSignupPatientIssuesVerifiableToken(t *testing.T) {
	repo := newFakeAuthRepo()
	svc, authority := newTestService(repo)

	accessToken, err := svc.SignupPatient(context.Background(), &model.PatientSignupRequest{
		HN:        100234,
		CitizenID: "1103700012345",
		FirstName: "Somchai",
		LastName:  "Jaidee",
		Email:     "somchai@example.com",
		Phone:     "0812345678",
		Password:  "correct horse",
	})
	require.NoError(t, err)

	userID, err := authority.Verify(accessToken)
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, repo.patients[patientKey{100234, "1103700012345"}].UserID, userID)
}

func TestSignupStoresBcryptHash(t *testing.T) {
	repo := newFakeAuthRepo()
	svc, _ := newTestService(repo)

	_, err := svc.SignupPatient(context.Background(), &model.PatientSignupRequest{
		HN: 1, CitizenID: "x", FirstName: "a", LastName: "b",
		Email: "a@b.c", Phone: "0", Password: "correct horse",
	})
	require.NoError(t, err)

	stored := repo.created[0].PasswordHash
	assert.NotEqual(t, "correct horse", stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("correct horse")))
}

func TestLoginPatient(t *testing.T) {
	repo := newFakeAuthRepo()
	svc, authority := newTestService(repo)

	_, err := svc.SignupPatient(context.Background(), &model.PatientSignupRequest{
		HN: 100234, CitizenID: "1103700012345", FirstName: "a", LastName: "b",
		Email: "a@b.c", Phone: "0", Password: "correct horse",
	})
	require.NoError(t, err)

	accessToken, err := svc.LoginPatient(context.Background(), &model.PatientLoginRequest{
		HN: 100234, CitizenID: "1103700012345", Password: "correct horse",
	})
	require.NoError(t, err)
	_, err = authority.Verify(accessToken)
	assert.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeAuthRepo()
	svc, _ := newTestService(repo)

	_, err := svc.SignupPatient(context.Background(), &model.PatientSignupRequest{
		HN: 100234, CitizenID: "1103700012345", FirstName: "a", LastName: "b",
		Email: "a@b.c", Phone: "0", Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.LoginPatient(context.Background(), &model.PatientLoginRequest{
		HN: 100234, CitizenID: "1103700012345", Password: "wrong",
	})
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestLoginUnknownIdentity(t *testing.T) {
	svc, _ := newTestService(newFakeAuthRepo())

	// A missing row must be indistinguishable from a wrong password.
	_, err := svc.LoginPatient(context.Background(), &model.PatientLoginRequest{
		HN: 999999, CitizenID: "0000000000000", Password: "whatever",
	})
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestLoginDoctor(t *testing.T) {
	repo := newFakeAuthRepo()
	svc, _ := newTestService(repo)

	_, err := svc.SignupDoctor(context.Background(), &model.DoctorSignupRequest{
		MLN: "D-4471", CitizenID: "1103700054321", FirstName: "a", LastName: "b",
		Email: "a@b.c", Phone: "0", Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.LoginDoctor(context.Background(), &model.DoctorLoginRequest{
		MLN: "D-4471", CitizenID: "1103700054321", Password: "correct horse",
	})
	assert.NoError(t, err)

	_, err = svc.LoginDoctor(context.Background(), &model.DoctorLoginRequest{
		MLN: "D-4471", CitizenID: "1103700054321", Password: "wrong",
	})
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestLoginLegacyPlaintextRow(t *testing.T) {
	repo := newFakeAuthRepo()
	repo.patients[patientKey{7, "c"}] = &model.Credential{UserID: uuid.New(), PasswordHash: "legacy-secret"}
	svc, _ := newTestService(repo)

	_, err := svc.LoginPatient(context.Background(), &model.PatientLoginRequest{
		HN: 7, CitizenID: "c", Password: "legacy-secret",
	})
	assert.NoError(t, err)

	_, err = svc.LoginPatient(context.Background(), &model.PatientLoginRequest{
		HN: 7, CitizenID: "c", Password: "legacy-wrong",
	})
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestRefresh(t *testing.T) {
	svc, authority := newTestService(newFakeAuthRepo())
	userID := uuid.New()

	accessToken, err := svc.Refresh(context.Background(), userID)
	require.NoError(t, err)

	got, err := authority.Verify(accessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}
