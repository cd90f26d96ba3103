package slots

import (
	"github.com/ParthG2209/Schedlyx/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupSlotRoutes registers the anonymous availability surface under the
// owning event.
func SetupSlotRoutes(rg *gin.RouterGroup, controller *Controller) {
	eventRoutes := rg.Group("/events/:eventId")
	eventRoutes.Use(middleware.SessionOptional())
	{
		eventRoutes.GET("/availability", controller.ListAvailability)
		eventRoutes.GET("/can-book", controller.CanBook)
	}
}
