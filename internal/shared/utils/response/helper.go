package response

import (
	"errors"

	"github.com/ParthG2209/Schedlyx/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errs interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errs,
	})
}

// RespondError maps a tagged core error onto the HTTP surface. Untagged
// errors come out as INTERNAL / 500.
func RespondError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	code := apperrors.HTTPStatus(kind)

	body := ErrorBody{Kind: string(kind), Message: err.Error()}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		body.Message = appErr.Message
		body.Available = appErr.Available
	}

	c.JSON(code, StandardApiResponse{
		Status:     "error",
		StatusCode: code,
		Message:    body.Message,
		Errors:     body,
	})
}
