package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/jwhitcraft/precast-tracker/internal/config"
	"github.com/jwhitcraft/precast-tracker/internal/domain/models"
)

// Exporter pushes report rows into the QC team's shared spreadsheet.
type Exporter interface {
	AppendReportRows(ctx context.Context, rows []models.ReportRow) error
}

// GoogleSheetExporter implements Exporter using the official Google Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Google Sheets backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    cfg.ReportRange,
		logger:        logger,
	}, nil
}

// AppendReportRows appends the report rows to the configured range, one
// spreadsheet row per report line, fields in ReportColumns order.
func (e *GoogleSheetExporter) AppendReportRows(ctx context.Context, rows []models.ReportRow) error {
	if len(rows) == 0 {
		return nil
	}

	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		fields := row.Values()
		cells := make([]interface{}, len(fields))
		for i, f := range fields {
			cells[i] = f
		}
		values = append(values, cells)
	}

	payload := &sheetsapi.ValueRange{Values: values}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, e.sheetRange, payload).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append report rows into range %s: %w", e.sheetRange, err)
	}

	e.logger.Debug("report rows appended to sheet", zap.String("range", e.sheetRange), zap.Int("rows", len(rows)))
	return nil
}
