package auth

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
	"github.com/clinicore/clinic-api/pkg/apperror"
	"github.com/clinicore/clinic-api/pkg/token"
)

const bcryptCost = 12

type Service struct {
	repo      repository.AuthRepository
	authority *token.Authority
}

func NewService(repo repository.AuthRepository, authority *token.Authority) *Service {
	return &Service{repo: repo, authority: authority}
}

func (s *Service) SignupPatient(ctx context.Context, req *model.PatientSignupRequest) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return "", apperror.Internal(err)
	}
	userID, err := s.repo.CreatePatient(ctx, &model.NewPatient{
		HN:           req.HN,
		CitizenID:    req.CitizenID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
	})
	if err != nil {
		return "", err
	}
	return s.authority.Issue(userID, token.AccessTokenTTL)
}

func (s *Service) SignupDoctor(ctx context.Context, req *model.DoctorSignupRequest) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return "", apperror.Internal(err)
	}
	userID, err := s.repo.CreateDoctor(ctx, &model.NewDoctor{
		MLN:          req.MLN,
		CitizenID:    req.CitizenID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
	})
	if err != nil {
		return "", err
	}
	return s.authority.Issue(userID, token.AccessTokenTTL)
}

func (s *Service) LoginPatient(ctx context.Context, req *model.PatientLoginRequest) (string, error) {
	cred, err := s.repo.PatientCredential(ctx, req.HN, req.CitizenID)
	if err != nil {
		return "", loginError(err)
	}
	if !verifyPassword(cred.PasswordHash, req.Password) {
		return "", apperror.Unauthorized()
	}
	return s.authority.Issue(cred.UserID, token.AccessTokenTTL)
}

func (s *Service) LoginDoctor(ctx context.Context, req *model.DoctorLoginRequest) (string, error) {
	cred, err := s.repo.DoctorCredential(ctx, req.MLN, req.CitizenID)
	if err != nil {
		return "", loginError(err)
	}
	if !verifyPassword(cred.PasswordHash, req.Password) {
		return "", apperror.Unauthorized()
	}
	return s.authority.Issue(cred.UserID, token.AccessTokenTTL)
}

// Refresh issues a fresh token for an already-verified caller. Prior
// tokens stay valid until they expire.
func (s *Service) Refresh(_ context.Context, userID uuid.UUID) (string, error) {
	return s.authority.Issue(userID, token.AccessTokenTTL)
}

func (s *Service) PatientProfile(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error) {
	return s.repo.PatientProfile(ctx, userID)
}

func (s *Service) DoctorProfile(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error) {
	return s.repo.DoctorProfile(ctx, userID)
}

func (s *Service) UpsertMedicalRights(ctx context.Context, items []model.MedicalRight) error {
	return s.repo.UpsertMedicalRights(ctx, items)
}

func (s *Service) UserMedicalRights(ctx context.Context, userID uuid.UUID) ([]model.MedicalRight, error) {
	return s.repo.ListUserMedicalRights(ctx, userID)
}

// loginError hides whether the identity pair exists: a missing
// credential row reads the same as a wrong password.
func loginError(err error) error {
	if apperror.KindOf(err) == apperror.KindNotFound {
		return apperror.Unauthorized()
	}
	return err
}

// verifyPassword checks a bcrypt hash, falling back to a constant-time
// comparison for legacy rows that predate hashing.
func verifyPassword(stored, candidate string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}
