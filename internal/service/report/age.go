package report

import (
	"fmt"
	"strconv"
	"time"
)

// AgeOfTest renders the elapsed time between casting and testing.
//
// Tests two or more calendar days old report the plain day count computed
// from the date parts alone; anything younger reports the precise elapsed
// duration as "{d}d {h}:{mm}" measured from the batching start (midnight when
// no start time was recorded). The day-count check runs on calendar dates
// before any clock arithmetic, so a pair two dates apart but under 48 hours
// of wall time still gets the coarse day count.
func AgeOfTest(castingDate time.Time, batchingStart *time.Duration, testingDate *time.Time) string {
	if testingDate == nil {
		return ""
	}

	daysDiff := int(dateOnly(*testingDate).Sub(dateOnly(castingDate)).Hours() / 24)
	if daysDiff >= 2 {
		return strconv.Itoa(daysDiff)
	}

	start := castingDate
	if batchingStart != nil {
		start = castingDate.Add(*batchingStart)
	}

	elapsed := testingDate.Sub(start)
	days := int(elapsed.Hours() / 24)
	hours := int(elapsed.Hours()) % 24
	minutes := int(elapsed.Minutes()) % 60

	return fmt.Sprintf("%dd %d:%02d", days, hours, minutes)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
