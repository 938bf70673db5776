package tester

import (
	"sort"
	"time"

	"github.com/jwhitcraft/precast-tracker/internal/domain/models"
	"github.com/jwhitcraft/precast-tracker/internal/service/report"
)

// buildQueue classifies the snapshot's schedule entries into the combined
// tester worklist: overdue-and-untested entries regardless of the horizon,
// plus everything due between today and endDate regardless of tested state.
// One row per cylinder, ordered by due date then schedule id.
func buildQueue(snapshot *models.Snapshot, today, endDate time.Time) []models.QueueRow {
	return collectQueue(snapshot, func(day *models.TestSetDay) bool {
		overdue := day.DateDue.Before(today) && day.DateTested == nil
		inWindow := !day.DateDue.Before(today) && !day.DateDue.After(endDate)
		return overdue || inWindow
	})
}

// buildQueueBetween returns every schedule entry due within [start, end],
// tested or not.
func buildQueueBetween(snapshot *models.Snapshot, start, end time.Time) []models.QueueRow {
	return collectQueue(snapshot, func(day *models.TestSetDay) bool {
		return !day.DateDue.Before(start) && !day.DateDue.After(end)
	})
}

// queueItem projects a single schedule entry, or nil when the id is unknown.
// A day without cylinders yields nil as well; there is nothing to test.
func queueItem(snapshot *models.Snapshot, testSetDayID int) *models.QueueRow {
	day := snapshot.TestSetDay(testSetDayID)
	if day == nil || day.TestSet == nil || day.TestSet.Placement == nil || len(day.Cylinders) == 0 {
		return nil
	}
	row := projectQueueRow(day, day.Cylinders[0])
	return &row
}

func collectQueue(snapshot *models.Snapshot, include func(*models.TestSetDay) bool) []models.QueueRow {
	var rows []models.QueueRow
	for _, ts := range snapshot.TestSets {
		if ts.Placement == nil {
			continue
		}
		for _, day := range ts.Days {
			if !include(day) {
				continue
			}
			for _, cyl := range day.Cylinders {
				rows = append(rows, projectQueueRow(day, cyl))
			}
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].DateDue.Equal(rows[j].DateDue) {
			return rows[i].DateDue.Before(rows[j].DateDue)
		}
		return rows[i].TestSetDayID < rows[j].TestSetDayID
	})
	return rows
}

func projectQueueRow(day *models.TestSetDay, cyl *models.TestCylinder) models.QueueRow {
	placement := day.TestSet.Placement

	row := models.QueueRow{
		TestCylinderCode: cyl.Code,
		OvenID:           placement.OvenID,
		DayNum:           day.DayNum,
		CastTime:         report.FormatClock(placement.StartTime),
		PieceType:        placement.PieceType,
		TestSetID:        day.TestSetID,
		TestSetDayID:     day.TestSetDayID,
		DateDue:          day.DateDue,
		DateTested:       day.DateTested,
	}

	if batch := placement.MixBatch; batch != nil {
		if batch.ProductionDay != nil {
			row.CastDate = batch.ProductionDay.Date
		}
		if batch.MixDesign != nil {
			row.MixDesignCode = batch.MixDesign.Code
			row.RequiredPsi = requiredPsi(batch.MixDesign, day.DayNum)
		}
	}
	if pour := placement.Pour; pour != nil && pour.Job != nil {
		row.JobCode = pour.Job.Code
		row.JobName = pour.Job.Name
	}

	return row
}

// requiredPsi looks up the strength threshold for a test age; a missing
// requirement row yields 0, not an error.
func requiredPsi(md *models.MixDesign, dayNum int) int {
	for _, req := range md.Requirements {
		if req.TestType == dayNum {
			return req.RequiredPsi
		}
	}
	return 0
}

// untestedPlacements lists placements with a batching start time, cast on or
// after the cutoff, that never had a test set scheduled.
func untestedPlacements(snapshot *models.Snapshot, cutoff time.Time) []models.UntestedPlacement {
	scheduled := make(map[int]bool, len(snapshot.TestSets))
	for _, ts := range snapshot.TestSets {
		scheduled[ts.PlacementID] = true
	}

	var out []models.UntestedPlacement
	for _, p := range snapshot.Placements {
		if p.StartTime == nil || scheduled[p.PlacementID] {
			continue
		}
		if p.MixBatch == nil || p.MixBatch.ProductionDay == nil {
			continue
		}
		castDate := p.MixBatch.ProductionDay.Date
		if castDate.Before(cutoff) {
			continue
		}

		up := models.UntestedPlacement{
			PourID:      p.PourID,
			PlacementID: p.PlacementID,
			CastDate:    castDate,
			CastTime:    report.FormatClock(p.StartTime),
			PieceType:   p.PieceType,
			Volume:      p.Volume,
		}
		if p.MixBatch.MixDesign != nil {
			up.MixDesignCode = p.MixBatch.MixDesign.Code
		}
		if p.Pour != nil && p.Pour.Job != nil {
			up.JobCode = p.Pour.Job.Code
			up.JobName = p.Pour.Job.Name
		}
		out = append(out, up)
	}
	return out
}

// testDayDetails projects the result-entry view of one schedule entry, or nil
// when the id is unknown.
func testDayDetails(snapshot *models.Snapshot, testSetDayID int) *models.TestDayDetails {
	day := snapshot.TestSetDay(testSetDayID)
	if day == nil || day.TestSet == nil || day.TestSet.Placement == nil {
		return nil
	}
	placement := day.TestSet.Placement

	details := models.TestDayDetails{
		TestSetDayID: day.TestSetDayID,
		DayNum:       day.DayNum,
		Comments:     day.Comments,
		DateDue:      day.DateDue,
		DateTested:   day.DateTested,
		PieceType:    placement.PieceType,
		CastTime:     report.FormatClock(placement.StartTime),
	}

	if batch := placement.MixBatch; batch != nil {
		if batch.ProductionDay != nil {
			details.CastDate = batch.ProductionDay.Date
		}
		if batch.MixDesign != nil {
			details.MixDesignCode = batch.MixDesign.Code
			details.RequiredPsi = requiredPsi(batch.MixDesign, day.DayNum)
		}
	}
	if pour := placement.Pour; pour != nil && pour.Job != nil {
		details.JobCode = pour.Job.Code
		details.JobName = pour.Job.Name
	}

	details.Cylinders = make([]models.CylinderBreak, 0, len(day.Cylinders))
	for _, cyl := range day.Cylinders {
		details.Cylinders = append(details.Cylinders, models.CylinderBreak{
			TestCylinderID: cyl.TestCylinderID,
			Code:           cyl.Code,
			BreakPsi:       cyl.BreakPsi,
		})
	}

	return &details
}
