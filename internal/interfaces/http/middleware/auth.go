package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shopfloor-io/shopfloor/internal/infrastructure/auth"
	"github.com/shopfloor-io/shopfloor/internal/shared/constants"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
	"github.com/shopfloor-io/shopfloor/internal/shared/utils"
)

type AuthMiddleware struct {
	verifier *auth.IdentityVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier *auth.IdentityVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

// RequireAuth verifies the bearer token and stashes the operator identity
// in the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.verifier.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyOperatorID, claims.OperatorID)
		c.Set(constants.ContextKeyRoles, claims.Roles)

		c.Next()
	}
}

// RequireRole gates a route on one of the listed roles.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		held, _ := c.Get(constants.ContextKeyRoles)
		heldRoles, _ := held.([]string)

		for _, want := range roles {
			for _, have := range heldRoles {
				if want == have {
					c.Next()
					return
				}
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden, "insufficient role")
		c.Abort()
	}
}

// OperatorID extracts the authenticated operator ID from the context.
func OperatorID(c *gin.Context) uint {
	value, _ := c.Get(constants.ContextKeyOperatorID)
	operatorID, _ := value.(uint)
	return operatorID
}
