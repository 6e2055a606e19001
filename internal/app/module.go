package app

import "github.com/gin-gonic/gin"

// Module defines the contract for a self-registering business module.
// Modules receive three route groups with increasing access requirements:
// public (no session), authed (valid session), and admin (session with the
// admin role).
type Module interface {
	RegisterRoutes(public, authed, admin *gin.RouterGroup)
}
