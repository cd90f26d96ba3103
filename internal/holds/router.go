package holds

import (
	"github.com/ParthG2209/Schedlyx/internal/shared/config"
	"github.com/ParthG2209/Schedlyx/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupHoldRoutes registers the hold lifecycle surface. Every route requires
// a session identity since holds are scoped per session.
func SetupHoldRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	holdRoutes := rg.Group("/holds")
	holdRoutes.Use(middleware.SessionRequired(), middleware.OptionalAuth(cfg))
	{
		holdRoutes.POST("", controller.CreateHold)
		holdRoutes.GET("/:holdId/verify", controller.VerifyHold)
		holdRoutes.DELETE("/:holdId", controller.ReleaseHold)
	}
}
