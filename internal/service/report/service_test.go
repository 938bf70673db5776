package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhitcraft/precast-tracker/internal/domain/models"
)

// Graph fixture helpers. Navigation pointers are wired directly, the way
// models.NewSnapshot would after loading.

func newBatch(id int, prodDate time.Time, mixCode string) *models.MixBatch {
	return &models.MixBatch{
		MixBatchID:    id,
		ProductionDay: &models.ProductionDay{ProductionDayID: id, Date: prodDate},
		MixDesign:     &models.MixDesign{MixDesignID: id, Code: mixCode},
	}
}

func newPlacement(id int, batch *models.MixBatch, start *time.Duration, oven string) *models.Placement {
	return &models.Placement{
		PlacementID: id,
		MixBatchID:  batch.MixBatchID,
		MixBatch:    batch,
		StartTime:   start,
		OvenID:      oven,
	}
}

func newDay(id, dayNum int, due time.Time) *models.TestSetDay {
	return &models.TestSetDay{TestSetDayID: id, DayNum: dayNum, DateDue: due}
}

func newTestSet(id int, p *models.Placement, days ...*models.TestSetDay) *models.TestSet {
	ts := &models.TestSet{TestSetID: id, PlacementID: p.PlacementID, Placement: p, Days: days}
	for _, d := range days {
		d.TestSetID = id
		d.TestSet = ts
	}
	return ts
}

func psi(v int) *int { return &v }

func cylinders(day *models.TestSetDay, breaks ...*int) {
	for i, b := range breaks {
		day.Cylinders = append(day.Cylinders, &models.TestCylinder{
			TestCylinderID: day.TestSetDayID*10 + i,
			TestSetDayID:   day.TestSetDayID,
			BreakPsi:       b,
		})
	}
}

func TestBuildReport_BatchTestsBeforePlacementTests(t *testing.T) {
	batch := newBatch(12, date(2025, 9, 9), "824.1")
	p1 := newPlacement(1, batch, clock(7, 30), "OVEN-1")
	p2 := newPlacement(2, batch, clock(9, 0), "OVEN-2")

	sets := []*models.TestSet{
		newTestSet(101, p2, newDay(1001, 1, date(2025, 9, 10))),
		newTestSet(102, p1,
			newDay(1002, 1, date(2025, 9, 10)),
			newDay(1003, 7, date(2025, 9, 16)),
			newDay(1004, 28, date(2025, 10, 7))),
	}

	rows := BuildReport(sets)
	require.Len(t, rows, 4)

	// 7 and 28-day batch tests lead, then 1-day tests in casting order.
	assert.Equal(t, "7C", rows[0].CylinderID)
	assert.Equal(t, "28C", rows[1].CylinderID)
	assert.Equal(t, "12.1", rows[2].TestID)
	assert.Equal(t, "12.2", rows[3].TestID)

	assert.Equal(t, "12", rows[0].TestID)
	assert.Equal(t, "12", rows[1].TestID)
	assert.Equal(t, "OVEN-1", rows[2].OvenID)
	assert.Equal(t, "OVEN-2", rows[3].OvenID)
}

func TestBuildReport_OrderedByProductionDateThenBatch(t *testing.T) {
	early := newBatch(30, date(2025, 9, 8), "824.1")
	late := newBatch(20, date(2025, 9, 9), "910.2")

	sets := []*models.TestSet{
		newTestSet(101, newPlacement(1, late, clock(8, 0), ""), newDay(1001, 7, date(2025, 9, 16))),
		newTestSet(102, newPlacement(2, early, clock(8, 0), ""), newDay(1002, 7, date(2025, 9, 15))),
	}

	rows := BuildReport(sets)
	require.Len(t, rows, 2)

	// The earlier production date wins even though its batch id is higher.
	assert.Equal(t, "30", rows[0].TestID)
	assert.Equal(t, "20", rows[1].TestID)
}

func TestBuildReport_ScheduledBatchTestShowsNominalAge(t *testing.T) {
	batch := newBatch(12, date(2025, 9, 9), "824.1")
	p := newPlacement(1, batch, clock(7, 30), "")

	rows := BuildReport([]*models.TestSet{
		newTestSet(101, p, newDay(1001, 7, date(2025, 9, 16))),
	})
	require.Len(t, rows, 1)

	assert.Equal(t, "7", rows[0].AgeOfTest)
	assert.Equal(t, "9/16", rows[0].TestingDate)
	assert.Equal(t, "09/09/2025", rows[0].CastingDate)
}

func TestBuildReport_ScheduledOneDayTestStaysBlank(t *testing.T) {
	batch := newBatch(12, date(2025, 9, 9), "824.1")
	p := newPlacement(1, batch, clock(7, 30), "")

	rows := BuildReport([]*models.TestSet{
		newTestSet(101, p, newDay(1001, 1, date(2025, 9, 10))),
	})
	require.Len(t, rows, 1)

	assert.Equal(t, "", rows[0].AgeOfTest)
	assert.Equal(t, "", rows[0].TestingDate)
}

func TestBuildReport_TestedDayUsesActualDate(t *testing.T) {
	batch := newBatch(12, date(2025, 9, 9), "824.1")
	p := newPlacement(1, batch, clock(22, 17), "")

	day := newDay(1001, 1, date(2025, 9, 10))
	day.DateTested = at(2025, 9, 10, 7, 38)

	rows := BuildReport([]*models.TestSet{newTestSet(101, p, day)})
	require.Len(t, rows, 1)

	assert.Equal(t, "0d 9:21", rows[0].AgeOfTest)
	assert.Equal(t, "9/10/25 7:38", rows[0].TestingDate)
}

func TestBuildReport_RequiredPsiFromMixDesign(t *testing.T) {
	batch := newBatch(12, date(2025, 9, 9), "824.1")
	batch.MixDesign.Requirements = []*models.MixDesignRequirement{
		{TestType: 1, RequiredPsi: 3500},
		{TestType: 28, RequiredPsi: 6000},
	}
	p := newPlacement(1, batch, clock(8, 0), "")

	rows := BuildReport([]*models.TestSet{
		newTestSet(101, p,
			newDay(1001, 1, date(2025, 9, 10)),
			newDay(1002, 7, date(2025, 9, 16)),
			newDay(1003, 28, date(2025, 10, 7))),
	})
	require.Len(t, rows, 3)

	assert.Equal(t, "0", rows[0].Required) // no 7-day requirement on file
	assert.Equal(t, "6000", rows[1].Required)
	assert.Equal(t, "3500", rows[2].Required)
}

func TestBuildReport_BreaksAndAverage(t *testing.T) {
	batch := newBatch(12, date(2025, 9, 9), "824.1")
	p := newPlacement(1, batch, clock(8, 0), "")

	day := newDay(1001, 7, date(2025, 9, 16))
	cylinders(day, psi(3251), psi(3250), nil)

	rows := BuildReport([]*models.TestSet{newTestSet(101, p, day)})
	require.Len(t, rows, 1)

	assert.Equal(t, "3251", rows[0].Break1)
	assert.Equal(t, "3250", rows[0].Break2)
	assert.Equal(t, "", rows[0].Break3)
	// 3250.5 rounds half away from zero.
	assert.Equal(t, "3251", rows[0].AveragePsi)
}

func TestBuildReport_AverageEmptyWithoutBreaks(t *testing.T) {
	batch := newBatch(12, date(2025, 9, 9), "824.1")
	p := newPlacement(1, batch, clock(8, 0), "")

	day := newDay(1001, 7, date(2025, 9, 16))
	cylinders(day, nil, nil, nil)

	rows := BuildReport([]*models.TestSet{newTestSet(101, p, day)})
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].AveragePsi)
}

func TestTruckNumbers_NumericFirstThenLexical(t *testing.T) {
	deliveries := []*models.Delivery{
		{TruckID: "10"},
		{TruckID: "3"},
		{TruckID: "R-7"},
		{TruckID: "2"},
		{TruckID: "A"},
	}

	assert.Equal(t, "2, 3, 10, A, R-7", truckNumbers(deliveries))
}

func TestTruckNumbers_Empty(t *testing.T) {
	assert.Equal(t, "", truckNumbers(nil))
}

func TestBuildReport_SkipsSetsWithoutPlacement(t *testing.T) {
	orphan := &models.TestSet{TestSetID: 1, Days: []*models.TestSetDay{newDay(1001, 7, date(2025, 9, 16))}}
	assert.Empty(t, BuildReport([]*models.TestSet{orphan}))
}

func TestBuildRow_JobPourAndBedColumns(t *testing.T) {
	batch := newBatch(12, date(2025, 9, 9), "824.1")
	p := newPlacement(1, batch, clock(8, 0), "")
	p.PieceType = "Walls"
	p.Volume = 10.5
	p.Pour = &models.Pour{
		PourID: 44,
		Job:    &models.Job{Code: "25-020", Name: "Woodbury HS"},
		Bed:    &models.Bed{BedID: 6},
	}

	rows := BuildReport([]*models.TestSet{
		newTestSet(101, p, newDay(1001, 7, date(2025, 9, 16))),
	})
	require.Len(t, rows, 1)

	assert.Equal(t, "25-020", rows[0].JobID)
	assert.Equal(t, "Woodbury HS", rows[0].JobName)
	assert.Equal(t, "44", rows[0].PourID)
	assert.Equal(t, "6", rows[0].BedID)
	assert.Equal(t, "Walls", rows[0].PieceType)
	assert.Equal(t, "10.5", rows[0].YardsPerBed)
	assert.Equal(t, "8:00", rows[0].BatchingStartTime)
	assert.Equal(t, "824.1", rows[0].MixDesign)
}
