package order

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clinicore/clinic-api/internal/handler"
	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/service/order"
	"github.com/clinicore/clinic-api/internal/service/rbac"
	"github.com/clinicore/clinic-api/pkg/apperror"
	"github.com/clinicore/clinic-api/pkg/httputil"
)

type Handler struct {
	service *order.Service
	rbac    *rbac.Service
}

func NewHandler(service *order.Service, rbacSvc *rbac.Service) *Handler {
	return &Handler{service: service, rbac: rbacSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/orders", h.List)
	r.POST("/order", h.Create)
	r.POST("/order/:order_id/confirm", h.Confirm)
}

func (h *Handler) List(c *gin.Context) {
	patientID, ok := handler.AuthedUser(c, h.rbac, model.RolePatient)
	if !ok {
		return
	}

	rows, err := h.service.List(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rows)
}

func (h *Handler) Create(c *gin.Context) {
	patientID, ok := handler.AuthedUser(c, h.rbac, model.RolePatient)
	if !ok {
		return
	}

	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.BadRequest(err.Error()))
		return
	}

	orderID, err := h.service.Create(c.Request.Context(), patientID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, model.CreateOrderResponse{OrderID: orderID})
}

func (h *Handler) Confirm(c *gin.Context) {
	patientID, ok := handler.AuthedUser(c, h.rbac, model.RolePatient)
	if !ok {
		return
	}

	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.BadRequest("invalid order id"))
		return
	}

	if err := h.service.Confirm(c.Request.Context(), patientID, orderID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithNoContent(c)
}
