// Package export renders report rows into downloadable file formats.
package export

import (
	"strings"

	"github.com/jwhitcraft/precast-tracker/internal/domain/models"
)

// ReportCSV renders the concrete report as CSV. A UTF-8 BOM is prepended so
// Excel opens the file correctly; field values are emitted verbatim, quoted
// only when they contain a delimiter, quote or newline.
func ReportCSV(rows []models.ReportRow) []byte {
	var sb strings.Builder
	sb.WriteRune('\uFEFF')

	writeCSVLine(&sb, models.ReportColumns)
	for _, row := range rows {
		writeCSVLine(&sb, row.Values())
	}

	return []byte(sb.String())
}

func writeCSVLine(sb *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(csvEscape(field))
	}
	sb.WriteByte('\n')
}

func csvEscape(value string) string {
	if !strings.ContainsAny(value, ",\"\n\r") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
