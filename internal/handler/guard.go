package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/middleware"
	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/service/rbac"
	"github.com/clinicore/clinic-api/pkg/apperror"
	"github.com/clinicore/clinic-api/pkg/httputil"
)

// AuthedUser returns the authenticated caller after verifying the
// required role against the store. On failure it writes the error
// response and returns ok=false.
func AuthedUser(c *gin.Context, rbacSvc *rbac.Service, role model.Role) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperror.Unauthorized())
		return uuid.Nil, false
	}
	if err := rbacSvc.RequireRole(c.Request.Context(), userID, role); err != nil {
		httputil.RespondWithError(c, err)
		return uuid.Nil, false
	}
	return userID, true
}
