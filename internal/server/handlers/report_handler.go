package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jwhitcraft/precast-tracker/internal/export"
	"github.com/jwhitcraft/precast-tracker/internal/service/report"
)

// ReportHandler serves the denormalized concrete report.
type ReportHandler struct {
	svc    *report.Service
	logger *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc *report.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// GetReport returns the report rows as JSON.
func (h *ReportHandler) GetReport(c *gin.Context) {
	rows, err := h.svc.GetReport(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetCSV returns the report as a CSV download.
func (h *ReportHandler) GetCSV(c *gin.Context) {
	rows, err := h.svc.GetReport(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="ConcreteReport.csv"`)
	c.Data(http.StatusOK, "text/csv", export.ReportCSV(rows))
}

// GetXLSX returns the report as an Excel workbook download.
func (h *ReportHandler) GetXLSX(c *gin.Context) {
	rows, err := h.svc.GetReport(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	data, err := export.ReportXLSX(rows)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="ConcreteReport.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
