package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/clinicore/clinic-api/internal/middleware"
	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/service/auth"
	"github.com/clinicore/clinic-api/internal/service/rbac"
	"github.com/clinicore/clinic-api/pkg/apperror"
	"github.com/clinicore/clinic-api/pkg/httputil"
)

type Handler struct {
	service *auth.Service
	rbac    *rbac.Service
}

func NewHandler(service *auth.Service, rbacSvc *rbac.Service) *Handler {
	return &Handler{service: service, rbac: rbacSvc}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	users := public.Group("/users")
	{
		users.POST("/patients", h.SignupPatient)
		users.POST("/login/patients", h.LoginPatient)
		users.POST("/doctors", h.SignupDoctor)
		users.POST("/login/doctors", h.LoginDoctor)
	}

	me := protected.Group("/users")
	{
		me.POST("/refresh", h.Refresh)
		me.GET("/patient/profiles", h.PatientProfile)
		me.GET("/doctor/profiles", h.DoctorProfile)
		me.GET("/me/medical-rights", h.MyMedicalRights)
		me.POST("/medical-rights", h.UpsertMedicalRights)
	}
}

func (h *Handler) SignupPatient(c *gin.Context) {
	var req model.PatientSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.BadRequest(err.Error()))
		return
	}

	accessToken, err := h.service.SignupPatient(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, model.AccessTokenResponse{AccessToken: accessToken})
}

func (h *Handler) LoginPatient(c *gin.Context) {
	var req model.PatientLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.BadRequest(err.Error()))
		return
	}

	accessToken, err := h.service.LoginPatient(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, model.AccessTokenResponse{AccessToken: accessToken})
}

func (h *Handler) SignupDoctor(c *gin.Context) {
	var req model.DoctorSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.BadRequest(err.Error()))
		return
	}

	accessToken, err := h.service.SignupDoctor(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, model.AccessTokenResponse{AccessToken: accessToken})
}

func (h *Handler) LoginDoctor(c *gin.Context) {
	var req model.DoctorLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.BadRequest(err.Error()))
		return
	}

	accessToken, err := h.service.LoginDoctor(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, model.AccessTokenResponse{AccessToken: accessToken})
}

func (h *Handler) Refresh(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperror.Unauthorized())
		return
	}

	accessToken, err := h.service.Refresh(c.Request.Context(), userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, model.AccessTokenResponse{AccessToken: accessToken})
}

func (h *Handler) PatientProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperror.Unauthorized())
		return
	}
	if err := h.rbac.RequireRole(c.Request.Context(), userID, model.RolePatient); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	profile, err := h.service.PatientProfile(c.Request.Context(), userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, profile)
}

func (h *Handler) DoctorProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperror.Unauthorized())
		return
	}
	if err := h.rbac.RequireRole(c.Request.Context(), userID, model.RoleDoctor); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	profile, err := h.service.DoctorProfile(c.Request.Context(), userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, profile)
}

func (h *Handler) MyMedicalRights(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperror.Unauthorized())
		return
	}
	if err := h.rbac.RequireRole(c.Request.Context(), userID, model.RolePatient); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	rights, err := h.service.UserMedicalRights(c.Request.Context(), userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rights)
}

func (h *Handler) UpsertMedicalRights(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperror.Unauthorized())
		return
	}
	if err := h.rbac.RequireRole(c.Request.Context(), userID, model.RoleAdmin); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var items []model.MedicalRight
	if err := c.ShouldBindJSON(&items); err != nil {
		httputil.RespondWithError(c, apperror.BadRequest(err.Error()))
		return
	}

	if err := h.service.UpsertMedicalRights(c.Request.Context(), items); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithNoContent(c)
}
