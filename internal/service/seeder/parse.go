package seeder

import (
	"strconv"
	"strings"
	"time"
)

const castingDateLayout = "01/02/2006"

// parseCastingDate reads the "MM/dd/yyyy" casting date column.
func parseCastingDate(value string) (time.Time, error) {
	return time.Parse(castingDateLayout, strings.TrimSpace(value))
}

// parseTestingDate reads the loosely formatted testing date column: "9/16",
// "10/7" or "9/9/25 22:17". Short forms borrow the casting year. Spreadsheet
// error artifacts ("#REF!" and friends) read as never-tested.
func parseTestingDate(value string, castingYear int) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" || strings.Contains(value, "#") {
		return nil
	}

	for _, layout := range []string{"1/2/06 15:04", "1/2/2006 15:04", "1/2/2006", "1/2/06"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}

	if t, err := time.Parse("1/2", value); err == nil {
		t = time.Date(castingYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &t
	}

	return nil
}

// parseClock reads a "h:mm" time-of-day as an offset from midnight.
func parseClock(value string) *time.Duration {
	value = strings.TrimSpace(value)
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return nil
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil
	}

	d := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
	return &d
}

// parseDayNum reads the cylinder id column ("1C", "7C", "28C").
func parseDayNum(value string) (int, bool) {
	value = strings.TrimSuffix(strings.TrimSpace(value), "C")
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func parseOptionalInt(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}

func parseIntOrZero(value string) int {
	if n := parseOptionalInt(value); n != nil {
		return *n
	}
	return 0
}

func parseFloatOrZero(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return f
}
