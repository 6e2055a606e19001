package product

import "github.com/gin-gonic/gin"

// ProductModule implements the app.Module interface for the product resource.
type ProductModule struct {
	handler *ProductHandler
}

// NewModule creates a new ProductModule with the given handler.
// Panics if h is nil.
func NewModule(h *ProductHandler) *ProductModule {
	if h == nil {
		panic("product.NewModule: handler must not be nil")
	}
	return &ProductModule{handler: h}
}

// RegisterRoutes registers product routes. Reads require a session; writes
// are admin only.
func (m *ProductModule) RegisterRoutes(public, authed, admin *gin.RouterGroup) {
	authed.GET("/products", m.handler.List)
	authed.GET("/products/:id", m.handler.Get)

	admin.POST("/products", m.handler.Create)
	admin.PUT("/products/:id", m.handler.Update)
	admin.DELETE("/products/:id", m.handler.Delete)
	admin.POST("/products/bulk-delete", m.handler.BulkDelete)
	admin.POST("/products/:id/image", m.handler.UploadImage)
}
