package shipping

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clinicore/clinic-api/internal/handler"
	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/service/rbac"
	"github.com/clinicore/clinic-api/internal/service/shipping"
	"github.com/clinicore/clinic-api/pkg/apperror"
	"github.com/clinicore/clinic-api/pkg/httputil"
)

type Handler struct {
	service *shipping.Service
	rbac    *rbac.Service
}

func NewHandler(service *shipping.Service, rbacSvc *rbac.Service) *Handler {
	return &Handler{service: service, rbac: rbacSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	ship := r.Group("/shipping")
	{
		ship.GET("/address", h.Address)
		ship.POST("/address", h.SaveAddress)
		ship.PATCH("/address", h.UpdateAddress)
		ship.GET("/orders", h.ListOrders)
		ship.GET("/orders/:order_id/status", h.Timeline)
		ship.GET("/orders/:order_id/map", h.MapImage)
	}
}

func (h *Handler) Address(c *gin.Context) {
	patientID, ok := handler.AuthedUser(c, h.rbac, model.RolePatient)
	if !ok {
		return
	}

	address, err := h.service.Address(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, address)
}

func (h *Handler) SaveAddress(c *gin.Context) {
	patientID, ok := handler.AuthedUser(c, h.rbac, model.RolePatient)
	if !ok {
		return
	}

	var req model.ShippingAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.BadRequest(err.Error()))
		return
	}

	if err := h.service.SaveAddress(c.Request.Context(), patientID, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, nil)
}

func (h *Handler) UpdateAddress(c *gin.Context) {
	patientID, ok := handler.AuthedUser(c, h.rbac, model.RolePatient)
	if !ok {
		return
	}

	var req model.ShippingAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.BadRequest(err.Error()))
		return
	}

	if err := h.service.UpdateAddress(c.Request.Context(), patientID, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithNoContent(c)
}

func (h *Handler) ListOrders(c *gin.Context) {
	patientID, ok := handler.AuthedUser(c, h.rbac, model.RolePatient)
	if !ok {
		return
	}

	statusCode := 0
	if raw := c.Query("status"); raw != "" {
		code, err := strconv.Atoi(raw)
		if err != nil {
			httputil.RespondWithError(c, apperror.BadRequest("invalid status filter"))
			return
		}
		statusCode = code
	}

	rows, err := h.service.ListOrders(c.Request.Context(), patientID, statusCode)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rows)
}

func (h *Handler) Timeline(c *gin.Context) {
	patientID, ok := handler.AuthedUser(c, h.rbac, model.RolePatient)
	if !ok {
		return
	}

	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.BadRequest("invalid order id"))
		return
	}

	timeline, err := h.service.Timeline(c.Request.Context(), patientID, orderID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, timeline)
}

func (h *Handler) MapImage(c *gin.Context) {
	patientID, ok := handler.AuthedUser(c, h.rbac, model.RolePatient)
	if !ok {
		return
	}

	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.BadRequest("invalid order id"))
		return
	}

	image, err := h.service.MapImage(c.Request.Context(), patientID, orderID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", image)
}
