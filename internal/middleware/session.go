package middleware

import (
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"

	"github.com/simp-lee/adminboard/internal/pkg"
)

const (
	sessionUserIDKey = "session_user_id"
	sessionRoleKey   = "session_role"
)

// SessionConfig controls how the session middleware reads and verifies tokens.
type SessionConfig struct {
	CookieName string
	Secret     []byte
}

// Session returns a gin middleware that authenticates requests from the
// session cookie. The cookie holds a signed HS256 token; invalid, expired,
// or missing tokens abort the request with a 401 JSON envelope.
//
// On success the principal is stored in the gin.Context and the user id is
// attached to the request context for structured logging.
func Session(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(cfg.CookieName)
		if err != nil || tokenString == "" {
			abortUnauthorized(c, "authentication required")
			return
		}

		claims, err := pkg.ParseToken(cfg.Secret, tokenString)
		if err != nil {
			abortUnauthorized(c, "invalid or expired session")
			return
		}

		c.Set(sessionUserIDKey, claims.UserID)
		c.Set(sessionRoleKey, claims.Role)

		ctx := logger.WithContextAttrs(c.Request.Context(),
			slog.Uint64("user_id", uint64(claims.UserID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// SessionUserID returns the authenticated user id set by the Session middleware.
func SessionUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(sessionUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// SessionRole returns the authenticated role set by the Session middleware.
func SessionRole(c *gin.Context) (string, bool) {
	v, exists := c.Get(sessionRoleKey)
	if !exists {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    http.StatusUnauthorized,
		"message": message,
		"data":    nil,
	})
}
