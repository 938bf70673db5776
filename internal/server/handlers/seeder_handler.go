package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jwhitcraft/precast-tracker/internal/service/seeder"
)

// SeederHandler triggers CSV ingestion of legacy report data.
type SeederHandler struct {
	svc    *seeder.Service
	logger *zap.Logger
}

// NewSeederHandler constructs the HTTP handler adapter.
func NewSeederHandler(svc *seeder.Service, logger *zap.Logger) *SeederHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeederHandler{svc: svc, logger: logger}
}

type seedRequest struct {
	Path string `json:"path" binding:"required"`
}

// Seed ingests the CSV file at the supplied server-side path.
func (h *SeederHandler) Seed(c *gin.Context) {
	var req seedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid seed payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rows, err := h.svc.SeedFromCSV(c.Request.Context(), req.Path)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows_seeded": rows})
}
