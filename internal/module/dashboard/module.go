package dashboard

import "github.com/gin-gonic/gin"

// DashboardModule implements the app.Module interface for dashboard statistics.
type DashboardModule struct {
	handler *DashboardHandler
}

// NewModule creates a new DashboardModule with the given handler.
// Panics if h is nil.
func NewModule(h *DashboardHandler) *DashboardModule {
	if h == nil {
		panic("dashboard.NewModule: handler must not be nil")
	}
	return &DashboardModule{handler: h}
}

// RegisterRoutes registers dashboard routes; statistics need a session.
func (m *DashboardModule) RegisterRoutes(public, authed, admin *gin.RouterGroup) {
	authed.GET("/dashboard/stats", m.handler.Stats)
}
