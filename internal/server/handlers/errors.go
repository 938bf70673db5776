package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jwhitcraft/precast-tracker/internal/domain/models"
)

// respondError maps domain errors onto HTTP statuses: NotFound to 404,
// Validation to 400, anything else to 500 with the detail kept out of the
// response body.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
