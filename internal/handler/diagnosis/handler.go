package diagnosis

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/handler"
	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/service/diagnosis"
	"github.com/clinicore/clinic-api/internal/service/rbac"
	"github.com/clinicore/clinic-api/pkg/apperror"
	"github.com/clinicore/clinic-api/pkg/httputil"
)

type Handler struct {
	service *diagnosis.Service
	rbac    *rbac.Service
}

func NewHandler(service *diagnosis.Service, rbacSvc *rbac.Service) *Handler {
	return &Handler{service: service, rbac: rbacSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/diagnoses/:patient_id", h.History)
	r.POST("/diagnoses/:patient_id", h.Create)
	r.GET("/diagnoses/:patient_id/info", h.HealthInfo)
	r.PATCH("/diagnosis/:diagnosis_id", h.Update)
}

func (h *Handler) History(c *gin.Context) {
	if _, ok := handler.AuthedUser(c, h.rbac, model.RoleDoctor); !ok {
		return
	}

	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.BadRequest("invalid patient id"))
		return
	}

	rows, err := h.service.History(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rows)
}

func (h *Handler) HealthInfo(c *gin.Context) {
	if _, ok := handler.AuthedUser(c, h.rbac, model.RoleDoctor); !ok {
		return
	}

	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.BadRequest("invalid patient id"))
		return
	}

	info, err := h.service.HealthInfo(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, info)
}

func (h *Handler) Create(c *gin.Context) {
	doctorID, ok := handler.AuthedUser(c, h.rbac, model.RoleDoctor)
	if !ok {
		return
	}

	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.BadRequest("invalid patient id"))
		return
	}

	var req model.CreateDiagnosisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.BadRequest(err.Error()))
		return
	}

	if err := h.service.Create(c.Request.Context(), doctorID, patientID, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, nil)
}

func (h *Handler) Update(c *gin.Context) {
	if _, ok := handler.AuthedUser(c, h.rbac, model.RoleDoctor); !ok {
		return
	}

	diagnosisID, err := strconv.Atoi(c.Param("diagnosis_id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.BadRequest("invalid diagnosis id"))
		return
	}

	var req model.UpdateDiagnosisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.BadRequest(err.Error()))
		return
	}

	if err := h.service.Update(c.Request.Context(), diagnosisID, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithNoContent(c)
}
