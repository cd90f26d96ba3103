package holds

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

func (c *Controller) CreateHold(ctx *gin.Context) {
	var req CreateHoldRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondError(ctx, apperrors.Wrap(apperrors.KindInvalidArgument, "invalid hold request body", err))
		return
	}

	hold, err := c.service.CreateHold(ctx.Request.Context(), req, middleware.SessionID(ctx), middleware.UserID(ctx))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Hold created successfully", hold, nil)
}

func (c *Controller) VerifyHold(ctx *gin.Context) {
	holdID, err := uuid.Parse(ctx.Param("holdId"))
	if err != nil {
		response.RespondError(ctx, apperrors.New(apperrors.KindInvalidArgument, "hold id must be a valid uuid"))
		return
	}

	verification, err := c.service.VerifyHold(ctx.Request.Context(), holdID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Hold verified", verification, nil)
}

func (c *Controller) ReleaseHold(ctx *gin.Context) {
	holdID, err := uuid.Parse(ctx.Param("holdId"))
	if err != nil {
		response.RespondError(ctx, apperrors.New(apperrors.KindInvalidArgument, "hold id must be a valid uuid"))
		return
	}

	result, err := c.service.ReleaseHold(ctx.Request.Context(), holdID, middleware.SessionID(ctx))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Hold release processed", result, nil)
}
