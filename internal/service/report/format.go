package report

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// FormatTestingDate renders a testing or due date for display: "M/d" when the
// value sits exactly on midnight, "M/d/yy H:mm" (24-hour clock, no leading
// zero on the hour) otherwise.
func FormatTestingDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
	}
	return fmt.Sprintf("%d/%d/%02d %d:%02d", int(t.Month()), t.Day(), t.Year()%100, t.Hour(), t.Minute())
}

// FormatClock renders a time-of-day offset as "h:mm" (hours unpadded).
func FormatClock(d *time.Duration) string {
	if d == nil {
		return ""
	}
	return fmt.Sprintf("%d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

// formatVolume renders cubic yards with at most two decimals, trailing zeros
// trimmed.
func formatVolume(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
