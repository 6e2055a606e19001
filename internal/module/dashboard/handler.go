package dashboard

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/adminboard/internal/pkg"
)

// DashboardHandler handles REST API requests for dashboard statistics.
type DashboardHandler struct {
	svc Service
}

// NewHandler creates a new DashboardHandler with the given service.
func NewHandler(svc Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats handles GET /api/v1/dashboard/stats.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, stats)
}
