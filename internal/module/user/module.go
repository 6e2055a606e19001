package user

import "github.com/gin-gonic/gin"

// UserModule implements the app.Module interface for the user resource.
type UserModule struct {
	handler *UserHandler
}

// NewModule creates a new UserModule with the given handler.
// Panics if h is nil.
func NewModule(h *UserHandler) *UserModule {
	if h == nil {
		panic("user.NewModule: handler must not be nil")
	}
	return &UserModule{handler: h}
}

// RegisterRoutes registers user routes. Reads require a session; writes are
// admin only.
func (m *UserModule) RegisterRoutes(public, authed, admin *gin.RouterGroup) {
	authed.GET("/users", m.handler.List)
	authed.GET("/users/:id", m.handler.Get)

	admin.POST("/users", m.handler.Create)
	admin.PUT("/users/:id", m.handler.Update)
	admin.DELETE("/users/:id", m.handler.Delete)
	admin.POST("/users/bulk-delete", m.handler.BulkDelete)
}
