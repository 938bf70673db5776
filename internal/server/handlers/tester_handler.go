package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jwhitcraft/precast-tracker/internal/domain/models"
	"github.com/jwhitcraft/precast-tracker/internal/service/tester"
)

const endDateLayout = "2006-01-02"

// TesterHandler serves the tester worklist and accepts submitted results.
type TesterHandler struct {
	svc    *tester.Service
	logger *zap.Logger
}

// NewTesterHandler constructs the HTTP handler adapter.
func NewTesterHandler(svc *tester.Service, logger *zap.Logger) *TesterHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TesterHandler{svc: svc, logger: logger}
}

// GetQueue returns the combined worklist. The horizon defaults to seven days
// out when no end_date is supplied.
func (h *TesterHandler) GetQueue(c *gin.Context) {
	endDate := time.Now().AddDate(0, 0, 7)
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse(endDateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be formatted YYYY-MM-DD"})
			return
		}
		endDate = parsed
	}

	rows, err := h.svc.GetQueue(c.Request.Context(), endDate)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetQueueItem returns the queue projection of one schedule entry.
func (h *TesterHandler) GetQueueItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	row, err := h.svc.GetQueueItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// GetUpcoming returns entries due in the next `days` days (default 7).
func (h *TesterHandler) GetUpcoming(c *gin.Context) {
	days, ok := queryInt(c, "days", 7)
	if !ok {
		return
	}

	rows, err := h.svc.GetUpcoming(c.Request.Context(), days)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetUntestedPlacements lists recent placements with no scheduled tests.
func (h *TesterHandler) GetUntestedPlacements(c *gin.Context) {
	daysBack, ok := queryInt(c, "days_back", 7)
	if !ok {
		return
	}

	rows, err := h.svc.GetUntestedPlacements(c.Request.Context(), daysBack)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetTestDayDetails returns the result-entry view of one schedule entry.
func (h *TesterHandler) GetTestDayDetails(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	details, err := h.svc.GetTestDayDetails(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// SaveTestDayResults records a tester's submitted breaks for one entry and
// returns the refreshed queue projection.
func (h *TesterHandler) SaveTestDayResults(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req models.SaveTestDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid save payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.TestSetDayID = id

	row, err := h.svc.SaveTestDayResults(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a non-negative integer"})
		return 0, false
	}
	return value, true
}
