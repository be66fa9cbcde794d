package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/model"
)

// All repository interfaces in one file. Mutation methods that target a
// specific row report rows-affected as a bool so services can decide
// between NotFound and Conflict.
type (
	AuthRepository interface {
		CreatePatient(ctx context.Context, p *model.NewPatient) (uuid.UUID, error)
		CreateDoctor(ctx context.Context, d *model.NewDoctor) (uuid.UUID, error)
		PatientCredential(ctx context.Context, hn int, citizenID string) (*model.Credential, error)
		DoctorCredential(ctx context.Context, mln, citizenID string) (*model.Credential, error)
		PatientProfile(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error)
		DoctorProfile(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error)
		UpsertMedicalRights(ctx context.Context, items []model.MedicalRight) error
		ListUserMedicalRights(ctx context.Context, userID uuid.UUID) ([]model.MedicalRight, error)
	}

	// RoleRepository backs the role guard. Lookups always hit the
	// database; grants and revocations take effect on the next request.
	RoleRepository interface {
		HasRole(ctx context.Context, userID uuid.UUID, role model.Role) (bool, error)
	}

	AppointmentRepository interface {
		FindTimeSlot(ctx context.Context, doctorID uuid.UUID, dayOfWeek int, startTime, endTime string) (int, error)
		Create(ctx context.Context, cmd *model.NewAppointment) (*model.Appointment, error)
		Get(ctx context.Context, id int) (*model.Appointment, error)
		Access(ctx context.Context, id int) (*model.AppointmentAccess, error)

		ListPatientUpcoming(ctx context.Context, patientID uuid.UUID, today time.Time) ([]model.AppointmentOverview, error)
		ListPatientOthers(ctx context.Context, patientID uuid.UUID, today time.Time) ([]model.AppointmentOverview, error)
		ListPatientByDate(ctx context.Context, patientID uuid.UUID, date time.Time) ([]model.AppointmentOverview, error)

		ListDoctors(ctx context.Context) ([]model.DoctorListItem, error)
		ListDoctorTimeSlots(ctx context.Context, doctorID uuid.UUID) ([]model.DoctorTimeSlotView, error)
		ListDoctorSchedule(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]model.DoctorAppointmentView, error)
		ListDoctorPending(ctx context.Context, doctorID uuid.UUID) ([]model.DoctorAppointmentView, error)
		ListDoctorAssessed(ctx context.Context, doctorID uuid.UUID) ([]model.DoctorAppointmentView, error)

		// Status updates carry the allowed source states in the WHERE
		// clause so a stale transition never writes.
		UpdateStatusByPatient(ctx context.Context, id int, patientID uuid.UUID, from []model.AppointmentStatus, to model.AppointmentStatus) (bool, error)
		UpdateStatusByDoctor(ctx context.Context, id int, doctorID uuid.UUID, from []model.AppointmentStatus, to model.AppointmentStatus) (bool, error)
		StatusForPatient(ctx context.Context, id int, patientID uuid.UUID) (model.AppointmentStatus, error)
		StatusForDoctor(ctx context.Context, id int, doctorID uuid.UUID) (model.AppointmentStatus, error)
		DecisionNotice(ctx context.Context, id int) (*model.AppointmentNotice, error)
		DeleteByPatient(ctx context.Context, id int, patientID uuid.UUID) (bool, error)

		UpdateTimeSlot(ctx context.Context, id int, doctorID uuid.UUID, req *model.UpdateTimeSlotRequest) (bool, error)
		DeleteTimeSlot(ctx context.Context, id int, doctorID uuid.UUID) (bool, error)
	}

	DiagnosisRepository interface {
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]model.DiagnosisEntry, error)
		HealthInfo(ctx context.Context, patientID uuid.UUID) (*model.PatientHealthInfo, error)
		AppointmentParties(ctx context.Context, appointmentID int) (*model.AppointmentAccess, error)
		Create(ctx context.Context, appointmentID int, patientID, doctorID uuid.UUID, symptom string) error
		UpdateSymptom(ctx context.Context, diagnosisID int, symptom string) (bool, error)
	}

	PrescriptionRepository interface {
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]model.Prescription, error)
		SearchMedicines(ctx context.Context, name string) ([]model.MedicineSearchItem, error)
		MedicineInfo(ctx context.Context, medicineID int) (*model.MedicineInfo, error)
		Create(ctx context.Context, req *model.CreatePrescriptionRequest) (int, error)
		Update(ctx context.Context, prescriptionID int, req *model.UpdatePrescriptionRequest) (bool, error)
		Delete(ctx context.Context, prescriptionID int) (bool, error)
	}

	OrderRepository interface {
		ListDetails(ctx context.Context, patientID uuid.UUID) ([]model.OrderDetail, error)
		Create(ctx context.Context, patientID uuid.UUID, req *model.CreateOrderRequest) (int, error)
		Confirm(ctx context.Context, patientID uuid.UUID, orderID int) (bool, error)
	}

	ShippingRepository interface {
		Address(ctx context.Context, patientID uuid.UUID) (*model.ShippingAddress, error)
		UpsertAddress(ctx context.Context, patientID uuid.UUID, req *model.ShippingAddressRequest) error
		UpdateAddress(ctx context.Context, patientID uuid.UUID, req *model.ShippingAddressRequest) (bool, error)
		ListOrders(ctx context.Context, patientID uuid.UUID, status *model.OrderStatus) ([]model.ShippingOrderSummary, error)
		Timeline(ctx context.Context, patientID uuid.UUID, orderID int) (*model.ShippingStatusTimeline, error)
		MapPoints(ctx context.Context, patientID uuid.UUID, orderID int) (*model.ShippingMapPoints, error)
	}
)
