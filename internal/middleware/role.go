package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole returns a gin middleware that allows the request through only
// when the session role matches one of the given roles. It must run after
// Session; a request without a session role is rejected with 401.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, ok := SessionRole(c)
		if !ok {
			abortUnauthorized(c, "authentication required")
			return
		}

		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    http.StatusForbidden,
				"message": "insufficient permissions",
				"data":    nil,
			})
			return
		}

		c.Next()
	}
}
