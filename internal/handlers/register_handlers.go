package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/ledgerhouse/bookkeeper/internal/core/ports/services"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces.
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations.
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1")

	registerAccountRoutes(v1, services)
	registerTransactionRoutes(v1, services)
	registerPurchaseRoutes(v1, services)
	registerVendorRoutes(v1, services)
	registerReportRoutes(v1, services)
}
