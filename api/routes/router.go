// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/ParthG2209/Schedlyx/internal/bookings"
	"github.com/ParthG2209/Schedlyx/internal/events"
	"github.com/ParthG2209/Schedlyx/internal/holds"
	"github.com/ParthG2209/Schedlyx/internal/notifications"
	"github.com/ParthG2209/Schedlyx/internal/shared/config"
	"github.com/ParthG2209/Schedlyx/internal/shared/database"
	"github.com/ParthG2209/Schedlyx/internal/slots"
	"github.com/ParthG2209/Schedlyx/pkg/cache"
	"github.com/ParthG2209/Schedlyx/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	log      *logger.Logger
	producer *notifications.Producer

	holdService holds.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, log *logger.Logger, producer *notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		log:      log,
		producer: producer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Hold routes first: the availability surface borrows the hold
		// service for its opportunistic expiry sweep.
		r.setupHoldRoutes(api)
		r.setupEventRoutes(api)
		r.setupSlotRoutes(api)
		r.setupBookingRoutes(api)
	}
}

// HoldService exposes the wired hold service so the server can hang the
// background sweeper off the same instance the routes use.
func (r *Router) HoldService() holds.Service {
	return r.holdService
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "schedlyx",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "schedlyx",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) setupHoldRoutes(rg *gin.RouterGroup) {
	holdRepo := holds.NewRepository(r.db.GetPostgreSQL())
	holdService := holds.NewService(holdRepo, r.config, r.log)
	holdController := holds.NewController(holdService)

	r.holdService = holdService

	holds.SetupHoldRoutes(rg, holdController, r.config)
}

func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	eventService := events.NewService(eventRepo, r.config)

	if r.db.GetRedisClient() != nil {
		eventService.SetCacheService(cache.NewService(r.db.GetRedisClient()))
	}

	eventController := events.NewController(eventService)
	events.SetupEventRoutes(rg, eventController)
}

func (r *Router) setupSlotRoutes(rg *gin.RouterGroup) {
	slotRepo := slots.NewRepository(r.db.GetPostgreSQL())
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	slotService := slots.NewService(slotRepo, eventRepo, r.config)

	if r.holdService != nil {
		slotService.SetExpirySweeper(r.holdService)
	}

	slotController := slots.NewController(slotService)
	slots.SetupSlotRoutes(rg, slotController)
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(bookingRepo, r.config, r.log, r.producer)
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController, r.config)
}
