package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/volunteerhub/volunteer-app/utils"
)

// RequireRole gates a route to callers carrying the given role claim.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		if userRole != role {
			utils.RespondError(c, http.StatusForbidden, fmt.Errorf("%s access required", role))
			c.Abort()
			return
		}

		c.Next()
	}
}
