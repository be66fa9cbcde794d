package prescription

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/handler"
	"github.com/clinicore/clinic-api/internal/middleware"
	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/service/prescription"
	"github.com/clinicore/clinic-api/internal/service/rbac"
	"github.com/clinicore/clinic-api/pkg/apperror"
	"github.com/clinicore/clinic-api/pkg/httputil"
)

type Handler struct {
	service *prescription.Service
	rbac    *rbac.Service
}

func NewHandler(service *prescription.Service, rbacSvc *rbac.Service) *Handler {
	return &Handler{service: service, rbac: rbacSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	rx := r.Group("/prescriptions")
	{
		rx.GET("", h.ListMine)
		rx.POST("", h.Create)
		rx.GET("/patient/:patient_id", h.ListByPatient)
		rx.PATCH("/:prescription_id", h.Update)
		rx.DELETE("/:prescription_id", h.Delete)
		rx.GET("/medicines/:medicine_id", h.MedicineInfo)
		rx.GET("/search/:input", h.SearchMedicines)
	}
}

// ListMine returns the caller's own prescriptions; any authenticated
// user may read their own.
func (h *Handler) ListMine(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperror.Unauthorized())
		return
	}

	rows, err := h.service.ListByPatient(c.Request.Context(), userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if len(rows) == 0 {
		httputil.RespondWithError(c, apperror.NotFound("prescriptions"))
		return
	}
	httputil.RespondWithSuccess(c, rows)
}

func (h *Handler) ListByPatient(c *gin.Context) {
	if _, ok := handler.AuthedUser(c, h.rbac, model.RoleDoctor); !ok {
		return
	}

	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.BadRequest("invalid patient id"))
		return
	}

	rows, err := h.service.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if len(rows) == 0 {
		httputil.RespondWithError(c, apperror.NotFound("prescriptions"))
		return
	}
	httputil.RespondWithSuccess(c, rows)
}

func (h *Handler) SearchMedicines(c *gin.Context) {
	if _, ok := handler.AuthedUser(c, h.rbac, model.RoleDoctor); !ok {
		return
	}

	rows, err := h.service.SearchMedicines(c.Request.Context(), c.Param("input"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rows)
}

func (h *Handler) MedicineInfo(c *gin.Context) {
	if _, ok := handler.AuthedUser(c, h.rbac, model.RoleDoctor); !ok {
		return
	}

	medicineID, err := strconv.Atoi(c.Param("medicine_id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.BadRequest("invalid medicine id"))
		return
	}

	info, err := h.service.MedicineInfo(c.Request.Context(), medicineID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, info)
}

func (h *Handler) Create(c *gin.Context) {
	if _, ok := handler.AuthedUser(c, h.rbac, model.RoleDoctor); !ok {
		return
	}

	var req model.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.BadRequest(err.Error()))
		return
	}

	id, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, model.PrescriptionIDResponse{PrescriptionID: id})
}

func (h *Handler) Update(c *gin.Context) {
	if _, ok := handler.AuthedUser(c, h.rbac, model.RoleDoctor); !ok {
		return
	}

	prescriptionID, err := strconv.Atoi(c.Param("prescription_id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.BadRequest("invalid prescription id"))
		return
	}

	var req model.UpdatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.BadRequest(err.Error()))
		return
	}

	if err := h.service.Update(c.Request.Context(), prescriptionID, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithNoContent(c)
}

func (h *Handler) Delete(c *gin.Context) {
	if _, ok := handler.AuthedUser(c, h.rbac, model.RoleDoctor); !ok {
		return
	}

	prescriptionID, err := strconv.Atoi(c.Param("prescription_id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.BadRequest("invalid prescription id"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), prescriptionID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithNoContent(c)
}
