package seeder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCastingDate(t *testing.T) {
	got, err := parseCastingDate("09/09/2025")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 9, 0, 0, 0, 0, time.UTC), got)

	_, err = parseCastingDate("not a date")
	assert.Error(t, err)
}

func TestParseTestingDate(t *testing.T) {
	assert.Nil(t, parseTestingDate("", 2025))
	assert.Nil(t, parseTestingDate("#REF!", 2025))
	assert.Nil(t, parseTestingDate("garbage", 2025))

	full := parseTestingDate("9/9/25 22:17", 2025)
	require.NotNil(t, full)
	assert.Equal(t, time.Date(2025, 9, 9, 22, 17, 0, 0, time.UTC), *full)

	dateOnly := parseTestingDate("10/7/2025", 2025)
	require.NotNil(t, dateOnly)
	assert.Equal(t, time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC), *dateOnly)

	// Short form borrows the casting year.
	short := parseTestingDate("9/16", 2024)
	require.NotNil(t, short)
	assert.Equal(t, time.Date(2024, 9, 16, 0, 0, 0, 0, time.UTC), *short)
}

func TestParseClock(t *testing.T) {
	assert.Nil(t, parseClock(""))
	assert.Nil(t, parseClock("morning"))
	assert.Nil(t, parseClock("9"))

	got := parseClock("13:45")
	require.NotNil(t, got)
	assert.Equal(t, 13*time.Hour+45*time.Minute, *got)

	midnight := parseClock("0:00")
	require.NotNil(t, midnight)
	assert.Equal(t, time.Duration(0), *midnight)
}

func TestParseDayNum(t *testing.T) {
	n, ok := parseDayNum("28C")
	assert.True(t, ok)
	assert.Equal(t, 28, n)

	n, ok = parseDayNum(" 1C ")
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	_, ok = parseDayNum("")
	assert.False(t, ok)
	_, ok = parseDayNum("XC")
	assert.False(t, ok)
	_, ok = parseDayNum("0C")
	assert.False(t, ok)
}

func TestParseOptionalInt(t *testing.T) {
	assert.Nil(t, parseOptionalInt(""))
	assert.Nil(t, parseOptionalInt("n/a"))

	got := parseOptionalInt(" 5200 ")
	require.NotNil(t, got)
	assert.Equal(t, 5200, *got)
}
