package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/pkg/apperror"
	"github.com/clinicore/clinic-api/pkg/httputil"
	"github.com/clinicore/clinic-api/pkg/token"
)

const ContextUserID = "user_id"

type AuthMiddleware struct {
	authority *token.Authority
}

func NewAuthMiddleware(authority *token.Authority) *AuthMiddleware {
	return &AuthMiddleware{authority: authority}
}

// Authenticate verifies the bearer token and stores the caller's user
// id in the request context. Role checks happen later, per handler.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, raw, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || raw == "" {
			httputil.RespondWithError(c, apperror.Unauthorized())
			c.Abort()
			return
		}

		userID, err := m.authority.Verify(raw)
		if err != nil {
			httputil.RespondWithError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserID pulls the authenticated caller out of the gin context.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
