package appointment

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/handler"
	"github.com/clinicore/clinic-api/internal/middleware"
	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/service/appointment"
	"github.com/clinicore/clinic-api/internal/service/rbac"
	"github.com/clinicore/clinic-api/pkg/apperror"
	"github.com/clinicore/clinic-api/pkg/httputil"
	"github.com/clinicore/clinic-api/pkg/metrics"
)

type Handler struct {
	service *appointment.Service
	rbac    *rbac.Service
	metrics *metrics.Metrics
}

func NewHandler(service *appointment.Service, rbacSvc *rbac.Service, m *metrics.Metrics) *Handler {
	return &Handler{service: service, rbac: rbacSvc, metrics: m}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	directory := public.Group("/appointments")
	{
		directory.GET("/doctor", h.ListDoctors)
		directory.GET("/doctor/:doctor_id", h.DoctorTimeSlotsPublic)
	}

	appts := protected.Group("/appointments")
	{
		appts.POST("", h.Book)
		appts.GET("/status", h.PatientUpcoming)
		appts.GET("/status/others", h.PatientOthers)
		appts.GET("/by-date/:date", h.PatientByDate)
		appts.GET("/by-doctor/:date", h.DoctorSchedule)
		appts.GET("/request", h.DoctorPending)
		appts.GET("/assessed", h.DoctorAssessed)
		appts.GET("/timeslots", h.MyTimeSlots)
		appts.PATCH("/timeslots/:timeslot_id", h.UpdateTimeSlot)
		appts.DELETE("/timeslots/:timeslot_id", h.DeleteTimeSlot)
		appts.GET("/:appointment_id", h.Get)
		appts.DELETE("/:appointment_id", h.Delete)
		appts.PATCH("/:appointment_id/canceled", h.Cancel)
		appts.PATCH("/:appointment_id/status/:action", h.Decide)
	}
}

func (h *Handler) Book(c *gin.Context) {
	patientID, ok := handler.AuthedUser(c, h.rbac, model.RolePatient)
	if !ok {
		return
	}

	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.BadRequest(err.Error()))
		return
	}

	appt, err := h.service.Book(c.Request.Context(), patientID, &req)
	if err != nil {
		h.metrics.BookingTotal.WithLabelValues(bookingOutcome(err)).Inc()
		httputil.RespondWithError(c, err)
		return
	}
	h.metrics.BookingTotal.WithLabelValues("booked").Inc()
	httputil.RespondWithSuccess(c, appt)
}

func bookingOutcome(err error) string {
	switch apperror.KindOf(err) {
	case apperror.KindConflict:
		return "conflict"
	case apperror.KindNotFound:
		return "no_slot"
	default:
		return "error"
	}
}

func (h *Handler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperror.Unauthorized())
		return
	}
	id, ok := pathInt(c, "appointment_id")
	if !ok {
		return
	}

	appt, err := h.service.Get(c.Request.Context(), userID, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appt)
}

func (h *Handler) PatientUpcoming(c *gin.Context) {
	patientID, ok := handler.AuthedUser(c, h.rbac, model.RolePatient)
	if !ok {
		return
	}

	rows, err := h.service.PatientUpcoming(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rows)
}

func (h *Handler) PatientOthers(c *gin.Context) {
	patientID, ok := handler.AuthedUser(c, h.rbac, model.RolePatient)
	if !ok {
		return
	}

	rows, err := h.service.PatientOthers(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rows)
}

func (h *Handler) PatientByDate(c *gin.Context) {
	patientID, ok := handler.AuthedUser(c, h.rbac, model.RolePatient)
	if !ok {
		return
	}

	rows, err := h.service.PatientByDate(c.Request.Context(), patientID, c.Param("date"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rows)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	rows, err := h.service.ListDoctors(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rows)
}

func (h *Handler) DoctorTimeSlotsPublic(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("doctor_id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.BadRequest("invalid doctor id"))
		return
	}

	rows, err := h.service.DoctorTimeSlots(c.Request.Context(), doctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rows)
}

func (h *Handler) DoctorSchedule(c *gin.Context) {
	doctorID, ok := handler.AuthedUser(c, h.rbac, model.RoleDoctor)
	if !ok {
		return
	}

	rows, err := h.service.DoctorSchedule(c.Request.Context(), doctorID, c.Param("date"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rows)
}

func (h *Handler) DoctorPending(c *gin.Context) {
	doctorID, ok := handler.AuthedUser(c, h.rbac, model.RoleDoctor)
	if !ok {
		return
	}

	rows, err := h.service.DoctorPending(c.Request.Context(), doctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rows)
}

func (h *Handler) DoctorAssessed(c *gin.Context) {
	doctorID, ok := handler.AuthedUser(c, h.rbac, model.RoleDoctor)
	if !ok {
		return
	}

	rows, err := h.service.DoctorAssessed(c.Request.Context(), doctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rows)
}

func (h *Handler) MyTimeSlots(c *gin.Context) {
	doctorID, ok := handler.AuthedUser(c, h.rbac, model.RoleDoctor)
	if !ok {
		return
	}

	rows, err := h.service.DoctorTimeSlots(c.Request.Context(), doctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rows)
}

func (h *Handler) UpdateTimeSlot(c *gin.Context) {
	doctorID, ok := handler.AuthedUser(c, h.rbac, model.RoleDoctor)
	if !ok {
		return
	}
	id, ok := pathInt(c, "timeslot_id")
	if !ok {
		return
	}

	var req model.UpdateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.BadRequest(err.Error()))
		return
	}

	if err := h.service.UpdateTimeSlot(c.Request.Context(), doctorID, id, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithNoContent(c)
}

func (h *Handler) DeleteTimeSlot(c *gin.Context) {
	doctorID, ok := handler.AuthedUser(c, h.rbac, model.RoleDoctor)
	if !ok {
		return
	}
	id, ok := pathInt(c, "timeslot_id")
	if !ok {
		return
	}

	if err := h.service.DeleteTimeSlot(c.Request.Context(), doctorID, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithNoContent(c)
}

func (h *Handler) Cancel(c *gin.Context) {
	patientID, ok := handler.AuthedUser(c, h.rbac, model.RolePatient)
	if !ok {
		return
	}
	id, ok := pathInt(c, "appointment_id")
	if !ok {
		return
	}

	if err := h.service.Cancel(c.Request.Context(), patientID, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithNoContent(c)
}

func (h *Handler) Decide(c *gin.Context) {
	doctorID, ok := handler.AuthedUser(c, h.rbac, model.RoleDoctor)
	if !ok {
		return
	}
	id, ok := pathInt(c, "appointment_id")
	if !ok {
		return
	}

	var to model.AppointmentStatus
	switch strings.ToLower(c.Param("action")) {
	case "accept":
		to = model.AppointmentStatusAccepted
	case "reject":
		to = model.AppointmentStatusRejected
	default:
		httputil.RespondWithError(c, apperror.BadRequest("action must be accept or reject"))
		return
	}

	if err := h.service.Decide(c.Request.Context(), doctorID, id, to); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithNoContent(c)
}

func (h *Handler) Delete(c *gin.Context) {
	patientID, ok := handler.AuthedUser(c, h.rbac, model.RolePatient)
	if !ok {
		return
	}
	id, ok := pathInt(c, "appointment_id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), patientID, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithNoContent(c)
}

func pathInt(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		httputil.RespondWithError(c, apperror.BadRequest("invalid "+name))
		return 0, false
	}
	return id, true
}
