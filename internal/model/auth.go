package model

import "github.com/google/uuid"

type PatientSignupRequest struct {
	HN        int    `json:"hn" binding:"required"`
	CitizenID string `json:"citizen_id" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

type PatientLoginRequest struct {
	HN        int    `json:"hn" binding:"required"`
	CitizenID string `json:"citizen_id" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

type DoctorSignupRequest struct {
	MLN       string `json:"mln" binding:"required"`
	CitizenID string `json:"citizen_id" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

type DoctorLoginRequest struct {
	MLN       string `json:"mln" binding:"required"`
	CitizenID string `json:"citizen_id" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

type MedicalRight struct {
	MRID     int    `db:"mr_id" json:"mr_id"`
	Name     string `db:"name" json:"name"`
	Details  string `db:"details" json:"details"`
	ImageURL string `db:"img_url" json:"image_url"`
}

// NewPatient carries the validated signup input into the repository,
// which writes users, patient_profile and user_roles in one transaction.
type NewPatient struct {
	HN           int
	CitizenID    string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PasswordHash string
}

type NewDoctor struct {
	MLN          string
	CitizenID    string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PasswordHash string
}

// Credential is the stored identity+hash pair resolved by a login lookup.
type Credential struct {
	UserID       uuid.UUID `db:"user_id"`
	PasswordHash string    `db:"password"`
}
