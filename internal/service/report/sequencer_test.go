package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwhitcraft/precast-tracker/internal/domain/models"
)

func TestPlacementSuffixes_OrderedByStartTimeThenOven(t *testing.T) {
	batch := newBatch(10, date(2025, 9, 9), "824.1")

	early := newPlacement(1, batch, clock(7, 30), "OVEN-2")
	late := newPlacement(2, batch, clock(14, 0), "OVEN-1")
	mid := newPlacement(3, batch, clock(9, 0), "OVEN-3")

	sets := []*models.TestSet{
		newTestSet(101, late, newDay(1001, 1, date(2025, 9, 10))),
		newTestSet(102, early, newDay(1002, 1, date(2025, 9, 10))),
		newTestSet(103, mid, newDay(1003, 1, date(2025, 9, 10))),
	}

	suffixes := placementSuffixes(sets)

	assert.Equal(t, 1, suffixes[suffixKey{10, early.PlacementID}])
	assert.Equal(t, 2, suffixes[suffixKey{10, mid.PlacementID}])
	assert.Equal(t, 3, suffixes[suffixKey{10, late.PlacementID}])
}

func TestPlacementSuffixes_OvenBreaksStartTimeTies(t *testing.T) {
	batch := newBatch(10, date(2025, 9, 9), "824.1")

	a := newPlacement(1, batch, clock(8, 0), "B")
	b := newPlacement(2, batch, clock(8, 0), "A")

	sets := []*models.TestSet{
		newTestSet(101, a, newDay(1001, 1, date(2025, 9, 10))),
		newTestSet(102, b, newDay(1002, 1, date(2025, 9, 10))),
	}

	suffixes := placementSuffixes(sets)

	assert.Equal(t, 1, suffixes[suffixKey{10, b.PlacementID}])
	assert.Equal(t, 2, suffixes[suffixKey{10, a.PlacementID}])
}

func TestPlacementSuffixes_IgnoresBatchLevelTests(t *testing.T) {
	batch := newBatch(10, date(2025, 9, 9), "824.1")
	p := newPlacement(1, batch, clock(8, 0), "")

	sets := []*models.TestSet{
		newTestSet(101, p,
			newDay(1001, 7, date(2025, 9, 16)),
			newDay(1002, 28, date(2025, 10, 7))),
	}

	assert.Empty(t, placementSuffixes(sets))
}

func TestPlacementSuffixes_MissingStartTimeSortsFirst(t *testing.T) {
	batch := newBatch(10, date(2025, 9, 9), "824.1")

	timed := newPlacement(1, batch, clock(6, 0), "A")
	untimed := newPlacement(2, batch, nil, "Z")

	sets := []*models.TestSet{
		newTestSet(101, timed, newDay(1001, 1, date(2025, 9, 10))),
		newTestSet(102, untimed, newDay(1002, 1, date(2025, 9, 10))),
	}

	suffixes := placementSuffixes(sets)

	assert.Equal(t, 1, suffixes[suffixKey{10, untimed.PlacementID}])
	assert.Equal(t, 2, suffixes[suffixKey{10, timed.PlacementID}])
}
