package bookings

import (
	"net/http"

	"github.com/ParthG2209/Schedlyx/internal/shared/apperrors"
	"github.com/ParthG2209/Schedlyx/internal/shared/middleware"
	"github.com/ParthG2209/Schedlyx/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) ConfirmBooking(ctx *gin.Context) {
	var req ConfirmBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondError(ctx, apperrors.Wrap(apperrors.KindInvalidArgument, "invalid booking request body", err))
		return
	}

	booking, err := c.service.ConfirmBooking(ctx.Request.Context(), req, middleware.SessionID(ctx), middleware.UserID(ctx))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking confirmed successfully", booking, nil)
}

func (c *Controller) GetBooking(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("bookingId"))
	if err != nil {
		response.RespondError(ctx, apperrors.New(apperrors.KindInvalidArgument, "booking id must be a valid uuid"))
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}
