package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending  AppointmentStatus = "PENDING"
	AppointmentStatusAccepted AppointmentStatus = "ACCEPTED"
	AppointmentStatusRejected AppointmentStatus = "REJECTED"
	AppointmentStatusCanceled AppointmentStatus = "CANCELED"
)

// StatusCode is the numeric label the mobile clients use.
func (s AppointmentStatus) StatusCode() int {
	switch s {
	case AppointmentStatusAccepted:
		return 1
	case AppointmentStatusPending:
		return 2
	case AppointmentStatusRejected:
		return 3
	case AppointmentStatusCanceled:
		return 4
	default:
		return 0
	}
}

// Terminal reports whether no further transition may leave this status.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusRejected || s == AppointmentStatusCanceled
}

type Appointment struct {
	ID         int               `db:"appointment_id" json:"appointment_id"`
	PatientID  uuid.UUID         `db:"patient_id" json:"patient_id"`
	TimeslotID int               `db:"timeslot_id" json:"timeslot_id"`
	Date       time.Time         `db:"date" json:"date"`
	Status     AppointmentStatus `db:"status" json:"status"`
	CreatedAt  time.Time         `db:"created_at" json:"created_at"`
}

type CreateAppointmentRequest struct {
	DoctorID  uuid.UUID `json:"doctor_id" binding:"required"`
	Date      string    `json:"date" binding:"required"`
	StartTime string    `json:"start_time" binding:"required,hhmm"`
	EndTime   string    `json:"end_time" binding:"required,hhmm"`
}

type UpdateTimeSlotRequest struct {
	DayOfWeek int    `json:"day_of_weeks" binding:"min=0,max=6"`
	PlaceName string `json:"place_name" binding:"required"`
	StartTime string `json:"start_time" binding:"required,hhmm"`
	EndTime   string `json:"end_time" binding:"required,hhmm"`
}

// NewAppointment is the booking command handed to the repository after
// the time-slot lookup succeeded.
type NewAppointment struct {
	PatientID  uuid.UUID
	TimeslotID int
	Date       time.Time
}

// AppointmentOverview is the patient-facing list row, joined with the
// slot and the doctor's name/department.
type AppointmentOverview struct {
	AppointmentID int               `db:"appointment_id" json:"appointment_id"`
	DoctorName    string            `db:"doctor_name" json:"doctor_name"`
	Department    *string           `db:"department" json:"department"`
	PlaceName     string            `db:"place_name" json:"place_name"`
	Date          string            `db:"date" json:"date"`
	StartTime     string            `db:"start_time" json:"start_time"`
	EndTime       string            `db:"end_time" json:"end_time"`
	Status        AppointmentStatus `db:"status" json:"status"`
}

// DoctorAppointmentView is the doctor-facing list row with the patient's
// name and the numeric status code.
type DoctorAppointmentView struct {
	AppointmentID int               `db:"appointment_id" json:"appointment_id"`
	PatientID     uuid.UUID         `db:"patient_id" json:"patient_id"`
	PatientName   string            `db:"patient_name" json:"patient_name"`
	Date          string            `db:"date" json:"date"`
	StartTime     string            `db:"start_time" json:"start_time"`
	EndTime       string            `db:"end_time" json:"end_time"`
	Status        AppointmentStatus `db:"status" json:"status"`
	StatusCode    int               `db:"-" json:"status_code"`
}

// DoctorTimeSlotView is the public slot row with formatted HH:MM times.
type DoctorTimeSlotView struct {
	TimeslotID int    `db:"timeslot_id" json:"timeslot_id"`
	DayOfWeek  int    `db:"day_of_weeks" json:"day_of_weeks"`
	PlaceName  string `db:"place_name" json:"place_name"`
	StartTime  string `db:"start_time" json:"start_time"`
	EndTime    string `db:"end_time" json:"end_time"`
}

type DoctorListItem struct {
	DoctorID   uuid.UUID `db:"doctor_id" json:"doctor_id"`
	DoctorName string    `db:"doctor_name" json:"doctor_name"`
	Department *string   `db:"department" json:"department"`
}

// AppointmentNotice carries what the decision email needs.
type AppointmentNotice struct {
	PatientEmail string `db:"patient_email"`
	PatientName  string `db:"patient_name"`
	Date         string `db:"date"`
	StartTime    string `db:"start_time"`
}

// AppointmentAccess is the ownership tuple used for read authorization.
type AppointmentAccess struct {
	PatientID uuid.UUID `db:"patient_id"`
	DoctorID  uuid.UUID `db:"doctor_id"`
}
