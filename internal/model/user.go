package model

import "time"

// Role is a named capability grant, stored as a row in user_roles and
// re-queried on every privileged request. The set is closed.
type Role string

const (
	RolePatient Role = "PATIENT"
	RoleDoctor  Role = "DOCTOR"
	RoleAdmin   Role = "ADMIN"
)

type DoctorProfile struct {
	FirstName  string `db:"first_name" json:"first_name"`
	LastName   string `db:"last_name" json:"last_name"`
	Email      string `db:"email" json:"email"`
	Phone      string `db:"phone" json:"phone"`
	Department string `db:"department" json:"departments"`
	Position   string `db:"position" json:"position"`
}

type PatientProfile struct {
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
