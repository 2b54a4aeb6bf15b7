package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vromao/catering-ops/internal/domain"
	"github.com/vromao/catering-ops/internal/dto"
)

// handleError maps domain errors to HTTP responses. All handlers share
// the same mapping so a given error always produces the same status.
func handleError(c *gin.Context, err error) {
	switch {
	case domain.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "NOT_FOUND",
		})
	case domain.IsValidationError(err):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_REQUEST",
		})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_TRANSITION",
		})
	case domain.IsInvalidStateError(err):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_STATE",
		})
	case domain.IsConflictError(err):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "CONFLICT",
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "internal server error",
			Code:  "INTERNAL_ERROR",
		})
	}
}
