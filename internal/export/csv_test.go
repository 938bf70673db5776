package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhitcraft/precast-tracker/internal/domain/models"
)

func TestReportCSV(t *testing.T) {
	rows := []models.ReportRow{
		{
			TestID:      "12.1",
			CylinderID:  "1C",
			CastingDate: "09/09/2025",
			TruckNo:     "3, 6",
			Comments:    `says "cracked"`,
		},
	}

	out := string(ReportCSV(rows))

	require.True(t, strings.HasPrefix(out, "\uFEFF"), "missing BOM")

	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(out, "\uFEFF"), "\n"), "\n")
	require.Len(t, lines, 2)

	assert.True(t, strings.HasPrefix(lines[0], "Test ID,Cylinder ID,Casting Date"))

	// The truck list is quoted for its comma, the comment for its quotes.
	assert.Contains(t, lines[1], `"3, 6"`)
	assert.Contains(t, lines[1], `"says ""cracked"""`)
	assert.True(t, strings.HasPrefix(lines[1], "12.1,1C,09/09/2025"))
}

func TestReportCSV_EmptyReportStillHasHeader(t *testing.T) {
	out := string(ReportCSV(nil))
	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(out, "\uFEFF"), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Average PSI")
}

func TestCSVEscape(t *testing.T) {
	assert.Equal(t, "plain", csvEscape("plain"))
	assert.Equal(t, `"a,b"`, csvEscape("a,b"))
	assert.Equal(t, `"line`+"\n"+`break"`, csvEscape("line\nbreak"))
	assert.Equal(t, `"he said ""hi"""`, csvEscape(`he said "hi"`))
}
