package slots

import (
	"net/http"
	"strconv"

	"github.com/ParthG2209/Schedlyx/internal/shared/middleware"
	"github.com/ParthG2209/Schedlyx/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) ListAvailability(ctx *gin.Context) {
	eventID := ctx.Param("eventId")
	if eventID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Event ID is required", nil, "missing event ID")
		return
	}

	// Session is optional here; without one every active hold is subtracted.
	sessionID := middleware.SessionID(ctx)

	rows, err := c.service.ListAvailability(ctx.Request.Context(), eventID, sessionID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Availability retrieved successfully", rows, nil)
}

func (c *Controller) CanBook(ctx *gin.Context) {
	eventID := ctx.Param("eventId")
	if eventID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Event ID is required", nil, "missing event ID")
		return
	}

	quantity, _ := strconv.Atoi(ctx.DefaultQuery("quantity", "1"))

	result, err := c.service.CanBook(ctx.Request.Context(), eventID, quantity)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookability checked successfully", result, nil)
}
