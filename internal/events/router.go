package events

import (
	"github.com/gin-gonic/gin"
)

// SetupEventRoutes registers the public event read surface.
func SetupEventRoutes(rg *gin.RouterGroup, controller *Controller) {
	eventRoutes := rg.Group("/events")
	{
		eventRoutes.GET("", controller.ListEvents)
		eventRoutes.GET("/:eventId", controller.GetEvent)
	}
}
