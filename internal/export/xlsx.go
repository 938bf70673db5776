package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jwhitcraft/precast-tracker/internal/domain/models"
)

const reportSheetName = "Concrete Report"

// ReportXLSX renders the concrete report as an XLSX workbook with a single
// sheet, header row first. Field values are written as strings so the
// formatted dates and break columns survive untouched.
func ReportXLSX(rows []models.ReportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := setStringRow(f, 1, models.ReportColumns); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := setStringRow(f, i+2, row.Values()); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setStringRow(f *excelize.File, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", rowNum, err)
	}

	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(reportSheetName, cell, &cells); err != nil {
		return fmt.Errorf("write row %d: %w", rowNum, err)
	}
	return nil
}
