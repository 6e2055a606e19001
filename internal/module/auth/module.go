package auth

import "github.com/gin-gonic/gin"

// AuthModule implements the app.Module interface for authentication.
type AuthModule struct {
	handler *AuthHandler
}

// NewModule creates a new AuthModule with the given handler.
// Panics if h is nil.
func NewModule(h *AuthHandler) *AuthModule {
	if h == nil {
		panic("auth.NewModule: handler must not be nil")
	}
	return &AuthModule{handler: h}
}

// RegisterRoutes registers auth routes. Register, login, and logout are
// public; the current-user lookup and profile picture management need a
// session.
func (m *AuthModule) RegisterRoutes(public, authed, admin *gin.RouterGroup) {
	grp := public.Group("/auth")
	grp.POST("/register", m.handler.Register)
	grp.POST("/login", m.handler.Login)
	grp.POST("/logout", m.handler.Logout)

	authed.GET("/auth/me", m.handler.Me)
	authed.POST("/auth/me/picture", m.handler.UploadPicture)
	authed.DELETE("/auth/me/picture", m.handler.DeletePicture)
}
