package bookings

import (
	"github.com/ParthG2209/Schedlyx/internal/shared/config"
	"github.com/ParthG2209/Schedlyx/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes registers the confirmation surface. Confirmation needs
// the session that owns the hold; reads are open.
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	bookingRoutes := rg.Group("/bookings")
	{
		bookingRoutes.POST("", middleware.SessionRequired(), middleware.OptionalAuth(cfg), controller.ConfirmBooking)
		bookingRoutes.GET("/:bookingId", controller.GetBooking)
	}
}
